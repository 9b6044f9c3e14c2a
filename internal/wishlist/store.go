package wishlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/internal/notify"
	"github.com/vasstra/vasstra-storefront/pkg/enums"
	"github.com/vasstra/vasstra-storefront/pkg/kv"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
	"github.com/vasstra/vasstra-storefront/pkg/metrics"
)

const storeName = "wishlist"

// Item is the snapshot kept for a liked product. Wishlist entries are
// keyed by product id alone; there are no size variants.
type Item struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	Image           string          `json:"image,omitempty"`
	Category        string          `json:"category,omitempty"`
	DiscountPercent int             `json:"discountPercent,omitempty"`
}

// Store tracks the deduplicated set of liked products with the same
// persist-on-mutate, hydrate-on-init contract as the cart.
type Store struct {
	mu    sync.Mutex
	items []Item

	snapshots kv.Store
	notifier  notify.Notifier
	logg      *logger.Logger
	metrics   *metrics.StoreMetrics
}

// NewStore builds a wishlist store hydrated from its snapshot key.
func NewStore(ctx context.Context, snapshots kv.Store, notifier notify.Notifier, logg *logger.Logger, m *metrics.StoreMetrics) (*Store, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}

	s := &Store{
		snapshots: snapshots,
		notifier:  notifier,
		logg:      logg,
		metrics:   m,
	}
	kv.Hydrate(ctx, snapshots, kv.KeyWishlist, &s.items)
	return s, nil
}

// Add appends the item unless its id is already present.
func (s *Store) Add(ctx context.Context, item Item) {
	s.mu.Lock()
	if s.containsLocked(item.ID) {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items, item)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(storeName, "add")
	s.notifier.Notify(ctx, enums.NotificationLevelSuccess, fmt.Sprintf("Added %s to wishlist", item.Name))
}

// Remove deletes the item when present and notifies on a hit.
func (s *Store) Remove(ctx context.Context, id int64) {
	s.mu.Lock()
	removed := ""
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			removed = item.Name
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	if removed != "" {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed == "" {
		return
	}
	s.metrics.IncMutation(storeName, "remove")
	s.notifier.Notify(ctx, enums.NotificationLevelInfo, fmt.Sprintf("Removed %s from wishlist", removed))
}

// Toggle is the canonical mutation entry point: it removes the item
// when present and adds it otherwise.
func (s *Store) Toggle(ctx context.Context, item Item) {
	if s.Contains(item.ID) {
		s.Remove(ctx, item.ID)
		return
	}
	s.Add(ctx, item)
}

// Contains is a pure membership test by product id.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(id)
}

// Items returns a copy of the current wishlist.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the cardinality of the set.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) containsLocked(id int64) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := kv.Persist(ctx, s.snapshots, kv.KeyWishlist, s.items); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithStore(ctx, storeName), "persist wishlist snapshot", err)
		}
	}
}
