// Package transport defines the request/response DTOs for the catalog module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=1,max=200"`
}

type UpdateProductRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=1,max=200"`
}

type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

type CreatePackageRequest struct {
	ProductID    uuid.UUID `json:"productId" binding:"required" validate:"required"`
	Name         string    `json:"name" binding:"required" validate:"required,min=1,max=200"`
	DefaultPrice int64     `json:"defaultPrice" validate:"min=0"`
}

type UpdatePackageRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DefaultPrice *int64  `json:"defaultPrice,omitempty" validate:"omitempty,min=0"`
}

type PackageResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	Name         string    `json:"name"`
	DefaultPrice int64     `json:"defaultPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
}
