package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/pkg/enums"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
	"github.com/vasstra/vasstra-storefront/pkg/types"
)

// Item is a purchased line frozen at checkout time. It never references
// the live catalog.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Size      *string         `json:"size,omitempty"`
	Color     *string         `json:"color,omitempty"`
}

// Order is one immutable order snapshot. Only Status changes, and only
// server-side; the store treats every order as read-only.
type Order struct {
	ID        string
	AltID     string
	Items     []Item
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	Status    enums.OrderStatus
	CreatedAt time.Time
	Address   types.ShippingAddress
}

// AddressInput carries the shipping address as checkout forms produce
// it, with the competing field spellings the backend has accumulated.
type AddressInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Addr       string `json:"addr"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	ZipCode    string `json:"zipCode"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// NormalizeAddress resolves the spelling variants into the canonical
// shipping address: first+last join over a preset full name, addr over
// address, zip over zipCode over postalCode.
func NormalizeAddress(in AddressInput) types.ShippingAddress {
	name := strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	if name == "" {
		name = strings.TrimSpace(in.Name)
	}

	return types.ShippingAddress{
		Name:    name,
		Phone:   strings.TrimSpace(in.Phone),
		Address: firstNonEmpty(in.Addr, in.Address),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zip:     firstNonEmpty(in.Zip, in.ZipCode, in.PostalCode),
		Country: strings.TrimSpace(in.Country),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func fromPayload(p storeapi.OrderPayload) Order {
	status, err := enums.ParseOrderStatus(p.Status)
	if err != nil {
		status = enums.OrderStatusPending
	}

	items := make([]Item, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Size:      it.Size,
			Color:     it.Color,
		})
	}

	return Order{
		ID:        p.ID,
		AltID:     p.OrderID,
		Items:     items,
		Subtotal:  p.Subtotal,
		Shipping:  p.Shipping,
		Total:     p.TotalAmount,
		Status:    status,
		CreatedAt: p.CreatedAt,
		Address:   p.ShippingAddress,
	}
}

func toItemPayloads(items []Item) []storeapi.OrderItemPayload {
	out := make([]storeapi.OrderItemPayload, 0, len(items))
	for _, it := range items {
		out = append(out, storeapi.OrderItemPayload{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
			Size:      it.Size,
			Color:     it.Color,
		})
	}
	return out
}
