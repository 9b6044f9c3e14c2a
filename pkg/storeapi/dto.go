package storeapi

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/pkg/types"
)

// OrderItemPayload is the line-item snapshot shape the order endpoints
// exchange. Items are copies captured at purchase time, never live
// catalog references.
type OrderItemPayload struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Image     string          `json:"image,omitempty"`
	Size      *string         `json:"size,omitempty"`
	Color     *string         `json:"color,omitempty"`
}

// OrderPayload mirrors one order as returned by the backend. The
// document id and the human-facing order id both appear depending on
// the endpoint, so both are kept.
type OrderPayload struct {
	ID              string                `json:"_id"`
	OrderID         string                `json:"orderId"`
	Items           []OrderItemPayload    `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Shipping        decimal.Decimal       `json:"shipping"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
}

// CreateOrderRequest is the payload for POST /orders, validated before
// it leaves the process.
type CreateOrderRequest struct {
	Items           []OrderItemPayload    `json:"items" validate:"required,min=1,dive"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Shipping        decimal.Decimal       `json:"shipping"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod" validate:"required"`
	PaymentDetails  map[string]any        `json:"paymentDetails,omitempty"`
}

// RawProduct is the loose product shape the catalog endpoint returns.
// Prices arrive as numbers or strings and several fields have competing
// spellings; internal/products normalizes it.
type RawProduct struct {
	ID            any      `json:"id"`
	DocID         string   `json:"_id"`
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Price         any      `json:"price"`
	OriginalPrice any      `json:"originalPrice"`
	MRP           any      `json:"mrp"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	SubCategory   string   `json:"subCategory"`
	Summer        bool     `json:"summer"`
	Winter        bool     `json:"winter"`
	Bestseller    bool     `json:"bestseller"`
	IsNew         bool     `json:"isNew"`
	NewArrival    bool     `json:"newArrival"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Stock         int      `json:"stock"`
}
