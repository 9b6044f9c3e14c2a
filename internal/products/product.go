package products

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
)

// Product is the normalized catalog entry the rest of the storefront
// works with. All spelling variants and string-or-number prices are
// resolved at this boundary.
type Product struct {
	ID            int64           `json:"id"`
	DocID         string          `json:"_id,omitempty"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image,omitempty"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Summer        bool            `json:"summer"`
	Winter        bool            `json:"winter"`
	Bestseller    bool            `json:"bestseller"`
	IsNew         bool            `json:"isNew"`
	Sizes         []string        `json:"sizes,omitempty"`
	Colors        []string        `json:"colors,omitempty"`
	Stock         int             `json:"stock"`
}

// Normalize resolves a raw backend product into the canonical shape.
// Missing original price falls back to the sale price so discount math
// never divides against zero.
func Normalize(raw storeapi.RawProduct) Product {
	price := parseAmount(raw.Price)
	original := parseAmount(raw.OriginalPrice)
	if original.IsZero() {
		original = parseAmount(raw.MRP)
	}
	if original.IsZero() {
		original = price
	}

	name := raw.Name
	if name == "" {
		name = raw.Title
	}
	subcategory := raw.Subcategory
	if subcategory == "" {
		subcategory = raw.SubCategory
	}

	return Product{
		ID:            parseID(raw.ID),
		DocID:         raw.DocID,
		Name:          name,
		Price:         price,
		OriginalPrice: original,
		Image:         raw.Image,
		Category:      raw.Category,
		Subcategory:   subcategory,
		Summer:        raw.Summer,
		Winter:        raw.Winter,
		Bestseller:    raw.Bestseller,
		IsNew:         raw.IsNew || raw.NewArrival,
		Sizes:         raw.Sizes,
		Colors:        raw.Colors,
		Stock:         raw.Stock,
	}
}

func parseID(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}

func parseAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		amount, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return amount
	default:
		return decimal.Zero
	}
}
