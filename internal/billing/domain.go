package billing

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

type PaymentMode string

const (
	PaymentCash  PaymentMode = "CASH"
	PaymentUPI   PaymentMode = "UPI"
	PaymentOther PaymentMode = "OTHER"
)

// Bill is one completed transaction. Immutable once created; later
// aggregation only ever reads it.
type Bill struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	TenantID      uuid.UUID    `json:"tenant_id" db:"tenant_id"`
	Subtotal      float64      `json:"subtotal" db:"subtotal"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	FinalAmount   float64      `json:"final_amount" db:"final_amount"`
	PaymentMode   PaymentMode  `json:"payment_mode" db:"payment_mode"`
	CreatedBy     *uuid.UUID   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	Items         []BillItem   `json:"items,omitempty" db:"-"`
}

// BillItem is one product line inside a bill. ProductName and Price
// are snapshots at sale time: renaming or repricing a product later
// never rewrites history.
type BillItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BillID      uuid.UUID `json:"bill_id" db:"bill_id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// InHouse marks lines whose product has unlimited stock; no
	// decrement is written for them. Not persisted on the line item.
	InHouse bool `json:"-" db:"-"`
}

// CartLine is one entry of a checkout request.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// CheckoutRequest generates a bill from the current cart.
type CheckoutRequest struct {
	Items         []CartLine   `json:"items" validate:"required,min=1,dive"`
	DiscountType  DiscountType `json:"discount_type" validate:"required,oneof=none flat percentage"`
	DiscountValue float64      `json:"discount_value" validate:"gte=0"`
	PaymentMode   PaymentMode  `json:"payment_mode" validate:"required,oneof=CASH UPI OTHER"`
	CreatedBy     *uuid.UUID   `json:"created_by,omitempty"`
}

// SaleProduct is the catalog snapshot checkout prices against.
type SaleProduct struct {
	ID        uuid.UUID
	Name      string
	Price     float64
	Stock     int
	IsInHouse bool
}
