package types

import "strings"

// ShippingAddress is the normalized address shape the order endpoint
// accepts. Checkout forms arrive with several competing field spellings;
// orders.NormalizeAddress folds them into this struct before submission.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country,omitempty"`
}

// IsZero reports whether no address field carries a value.
func (a ShippingAddress) IsZero() bool {
	return strings.TrimSpace(a.Name) == "" &&
		strings.TrimSpace(a.Address) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.Zip) == ""
}
