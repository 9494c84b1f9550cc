package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Tab groups products on the billing screen (a category strip).
type Tab struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product is one sellable catalog entry. In-house products are made to
// order and carry no stock count.
type Product struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	TabID     *uuid.UUID `json:"tab_id,omitempty" db:"tab_id"`
	Name      string     `json:"name" db:"name"`
	Price     float64    `json:"price" db:"price"`
	Stock     int        `json:"stock" db:"stock"`
	IsInHouse bool       `json:"is_in_house" db:"is_in_house"`
	ImageURL  *string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateTabRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateProductRequest struct {
	TabID     *uuid.UUID `json:"tab_id,omitempty"`
	Name      string     `json:"name" validate:"required,max=200"`
	Price     float64    `json:"price" validate:"gte=0"`
	Stock     int        `json:"stock" validate:"gte=0"`
	IsInHouse bool       `json:"is_in_house"`
	ImageURL  *string    `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateProductRequest struct {
	TabID     *uuid.UUID `json:"tab_id,omitempty"`
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Price     *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock     *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsInHouse *bool      `json:"is_in_house,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty" validate:"omitempty,url"`
}
