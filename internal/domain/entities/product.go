package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Product represents a catalog product owned by a merchant
type Product struct {
	ID          uuid.UUID   `json:"id"`
	MerchantID  uuid.UUID   `json:"merchantId"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	ImageURL    string      `json:"imageUrl"`
	Price       int64       `json:"price"`
	Stock       int         `json:"stock"`
	Category    null.String `json:"category,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	DeletedAt   *time.Time  `json:"-"`
}

// CreateProductInput represents input for creating a product
type CreateProductInput struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
	Category    string `json:"category,omitempty"`
}

// UpdateProductInput represents input for updating a product
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
