// Package transport defines the request/response DTOs for the auth module.
package transport

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=100"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type MeResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
}
