package products

import (
	"context"
	"fmt"

	"github.com/vasstra/vasstra-storefront/pkg/kv"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

const defaultRecentlyViewedCap = 8

// RecentlyViewed keeps the most recent product views, newest first,
// deduplicated by product id and capped. Like the other stores it
// persists its full snapshot on every mutation.
type RecentlyViewed struct {
	items []Product
	cap   int

	snapshots kv.Store
	logg      *logger.Logger
}

func NewRecentlyViewed(ctx context.Context, snapshots kv.Store, cap int, logg *logger.Logger) (*RecentlyViewed, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if cap < 1 {
		cap = defaultRecentlyViewedCap
	}

	r := &RecentlyViewed{
		cap:       cap,
		snapshots: snapshots,
		logg:      logg,
	}
	kv.Hydrate(ctx, snapshots, kv.KeyRecentlyViewed, &r.items)
	if len(r.items) > r.cap {
		r.items = r.items[:r.cap]
	}
	return r, nil
}

// Record moves the product to the front, dropping any older entry for
// the same id and trimming to the cap.
func (r *RecentlyViewed) Record(ctx context.Context, p Product) {
	next := make([]Product, 0, len(r.items)+1)
	next = append(next, p)
	for _, existing := range r.items {
		if existing.ID == p.ID {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > r.cap {
		next = next[:r.cap]
	}
	r.items = next

	if err := kv.Persist(ctx, r.snapshots, kv.KeyRecentlyViewed, r.items); err != nil && r.logg != nil {
		r.logg.Error(r.logg.WithStore(ctx, "recently_viewed"), "persist recently viewed", err)
	}
}

// Items returns the view history, most recent first.
func (r *RecentlyViewed) Items() []Product {
	out := make([]Product, len(r.items))
	copy(out, r.items)
	return out
}
