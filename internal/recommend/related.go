package recommend

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/internal/products"
)

// DefaultLimit is how many related products are returned when the
// caller does not ask for a specific count.
const DefaultLimit = 4

var (
	priceBandLow  = decimal.RequireFromString("0.8")
	priceBandHigh = decimal.RequireFromString("1.2")
)

// Score computes the relevance of candidate against reference. A zero
// score means the candidate is unrelated and must not be recommended.
func Score(reference, candidate products.Product) int {
	score := 0
	if candidate.Category == reference.Category {
		score += 50
	}
	if reference.Subcategory != "" && candidate.Subcategory == reference.Subcategory {
		score += 40
	}
	if withinPriceBand(reference.Price, candidate.Price) {
		score += 20
	}
	if reference.Summer && candidate.Summer {
		score += 10
	}
	if reference.Winter && candidate.Winter {
		score += 10
	}
	if candidate.Bestseller {
		score += 5
	}
	if candidate.IsNew {
		score += 5
	}
	return score
}

// Related ranks pool candidates against reference and returns the top
// limit entries. When scoring leaves the result short, it pads with
// same-category or bestseller candidates in pool order. The result may
// still be shorter than limit on a small pool; callers render what they
// get.
func Related(reference products.Product, pool []products.Product, limit int) []products.Product {
	if limit < 1 {
		limit = DefaultLimit
	}

	type scored struct {
		product products.Product
		score   int
	}

	candidates := make([]scored, 0, len(pool))
	for _, p := range pool {
		if p.ID == reference.ID {
			continue
		}
		if s := Score(reference, p); s > 0 {
			candidates = append(candidates, scored{product: p, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]products.Product, 0, limit)
	selected := make(map[int64]bool, limit)
	for _, c := range candidates {
		result = append(result, c.product)
		selected[c.product.ID] = true
	}

	for _, p := range pool {
		if len(result) >= limit {
			break
		}
		if p.ID == reference.ID || selected[p.ID] {
			continue
		}
		if p.Category == reference.Category || p.Bestseller {
			result = append(result, p)
			selected[p.ID] = true
		}
	}

	return result
}

func withinPriceBand(reference, candidate decimal.Decimal) bool {
	if reference.IsZero() {
		return false
	}
	low := reference.Mul(priceBandLow)
	high := reference.Mul(priceBandHigh)
	return candidate.GreaterThanOrEqual(low) && candidate.LessThanOrEqual(high)
}
