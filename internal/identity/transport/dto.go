// Package transport defines the request/response DTOs for the identity module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=100"`
	FullName string `json:"fullName" binding:"required" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"omitempty,email,max=200"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required" validate:"required,oneof=superadmin admin hc"`
	Phone    string `json:"phone" validate:"omitempty,min=5,max=32"`
}

type UpdateUserRequest struct {
	FullName  *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin hc"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,max=500"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required" validate:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required" validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
}
