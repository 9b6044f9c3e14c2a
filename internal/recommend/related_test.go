package recommend

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/internal/products"
)

func product(id int64, category string) products.Product {
	return products.Product{
		ID:       id,
		Category: category,
		Price:    decimal.NewFromInt(1000),
	}
}

func TestScoreComponents(t *testing.T) {
	reference := products.Product{
		ID:          1,
		Category:    "women",
		Subcategory: "kurtas",
		Price:       decimal.NewFromInt(1000),
		Summer:      true,
		Winter:      true,
	}
	candidate := products.Product{
		ID:          2,
		Category:    "women",
		Subcategory: "kurtas",
		Price:       decimal.NewFromInt(1100),
		Summer:      true,
		Winter:      true,
		Bestseller:  true,
		IsNew:       true,
	}

	if got := Score(reference, candidate); got != 140 {
		t.Fatalf("expected full score 140, got %d", got)
	}
}

func TestScoreEmptySubcategoryNeverMatches(t *testing.T) {
	reference := products.Product{ID: 1, Category: "women"}
	candidate := products.Product{ID: 2, Category: "men"}

	if got := Score(reference, candidate); got != 0 {
		t.Fatalf("expected empty subcategories not to match, got %d", got)
	}
}

func TestRelatedExactCategoryRanksFirst(t *testing.T) {
	reference := product(1, "women")
	pool := make([]products.Product, 0, 10)
	for i := int64(2); i <= 10; i++ {
		p := product(i, "unrelated")
		p.Price = decimal.NewFromInt(50)
		pool = append(pool, p)
	}
	match := product(11, "women")
	pool = append(pool, match)

	got := Related(reference, pool, 4)
	if len(got) == 0 || got[0].ID != match.ID {
		t.Fatalf("expected exact-category match to rank first, got %+v", got)
	}
}

func TestRelatedExcludesReferenceAndZeroScores(t *testing.T) {
	reference := product(1, "women")
	unrelated := product(2, "men")
	unrelated.Price = decimal.NewFromInt(50)

	got := Related(reference, []products.Product{reference, unrelated}, 4)
	if len(got) != 0 {
		t.Fatalf("expected no recommendations, got %+v", got)
	}
}

func TestRelatedTiesKeepPoolOrder(t *testing.T) {
	reference := product(1, "women")
	a := product(2, "women")
	b := product(3, "women")

	got := Related(reference, []products.Product{a, b}, 4)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected stable pool order on ties, got %+v", got)
	}
}

// Padding may come up short on a small pool; the scorer reports what it
// has rather than fabricating entries.
func TestRelatedSmallPoolReturnsFewerThanLimit(t *testing.T) {
	reference := product(1, "women")
	pool := []products.Product{product(2, "women"), product(3, "women")}

	got := Related(reference, pool, 4)
	if len(got) != 2 {
		t.Fatalf("expected at most 2 items from a pool of 2, got %d", len(got))
	}
}

func TestRelatedBestsellerFromOtherCategoryRanksLast(t *testing.T) {
	reference := product(1, "women")
	reference.Subcategory = "kurtas"

	strongMatch := product(2, "women")
	strongMatch.Subcategory = "kurtas"

	crossCategoryBestseller := product(3, "men")
	crossCategoryBestseller.Price = decimal.NewFromInt(50)
	crossCategoryBestseller.Bestseller = true

	unrelated := product(4, "men")
	unrelated.Price = decimal.NewFromInt(50)

	got := Related(reference, []products.Product{unrelated, crossCategoryBestseller, strongMatch}, 3)

	if len(got) != 2 {
		t.Fatalf("expected two recommendations, got %+v", got)
	}
	if got[0].ID != 2 {
		t.Fatalf("expected strong match first, got %+v", got)
	}
	if got[1].ID != 3 {
		t.Fatalf("expected bestseller second, got %+v", got)
	}
}
