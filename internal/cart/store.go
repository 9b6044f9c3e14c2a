package cart

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

const storeName = "cart"

// Item is the denormalized product snapshot captured when the shopper
// adds to cart. Later catalog price changes never touch existing lines.
type Item struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image,omitempty"`
	Size          *string         `json:"size,omitempty"`
	Category      string          `json:"category,omitempty"`
}

// Line is one cart entry. Lines are keyed by (product id, size): the
// same product in two sizes is two lines.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Store holds the shopper's current line items and derives monetary
// totals. Every mutation synchronously persists the full snapshot.
// The store trusts its callers: items with invalid prices or ids are a
// caller contract violation, not a handled error.
type Store struct {
	mu    sync.Mutex
	lines []Line
	open  bool

	snapshots kv.Store
	notifier  notify.Notifier
	logg      *logger.Logger
	metrics   *metrics.StoreMetrics
}

// NewStore builds a cart store and hydrates it from the snapshot key.
// A missing or malformed snapshot yields an empty cart.
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
	kv.Hydrate(ctx, snapshots, kv.KeyCart, &s.lines)
	return s, nil
}

// Add merges quantity into the line matching (item.ID, item.Size) or
// appends a new line. It opens the cart flag and notifies the shopper.
func (s *Store) Add(ctx context.Context, item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].ID == item.ID && sameSize(s.lines[i].Size, item.Size) {
			s.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{Item: item, Quantity: quantity})
	}
	s.open = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(storeName, "add")
	if merged {
		s.notifier.Notify(ctx, enums.NotificationLevelSuccess, fmt.Sprintf("Updated %s quantity", item.Name))
		return
	}
	s.notifier.Notify(ctx, enums.NotificationLevelSuccess, fmt.Sprintf("Added %s to cart", item.Name))
}

// Remove deletes the matching line. Removing an absent line is a silent
// no-op; a hit notifies the shopper.
func (s *Store) Remove(ctx context.Context, id int64, size *string) {
	s.mu.Lock()
	removed := ""
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ID == id && sameSize(line.Size, size) {
			removed = line.Name
			continue
		}
		kept = append(kept, line)
	}
	s.lines = kept
	if removed != "" {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed == "" {
		return
	}
	s.metrics.IncMutation(storeName, "remove")
	s.notifier.Notify(ctx, enums.NotificationLevelInfo, fmt.Sprintf("Removed %s from cart", removed))
}

// SetQuantity sets the line's quantity directly, without notification.
// A quantity below one removes the line instead.
func (s *Store) SetQuantity(ctx context.Context, id int64, quantity int, size *string) {
	if quantity < 1 {
		s.Remove(ctx, id, size)
		return
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == id && sameSize(s.lines[i].Size, size) {
			s.lines[i].Quantity = quantity
			s.persistLocked(ctx)
			break
		}
	}
	s.mu.Unlock()

	s.metrics.IncMutation(storeName, "set_quantity")
}

// Clear empties the cart and notifies the shopper.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncMutation(storeName, "clear")
	s.notifier.Notify(ctx, enums.NotificationLevelInfo, "Cart cleared")
}

// Lines returns a copy of the current line items.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity, recomputed on every read.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, line := range s.lines {
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// TotalSavings is the sum of (original price minus price) times quantity.
func (s *Store) TotalSavings() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, line := range s.lines {
		diff := line.OriginalPrice.Sub(line.Price)
		sum = sum.Add(diff.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// Open reports whether the cart drawer flag is set.
func (s *Store) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen toggles the cart drawer flag. The flag is UI state and is not
// persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

// persistLocked writes the full snapshot. A persistence failure keeps
// the in-memory state and is logged, never propagated.
func (s *Store) persistLocked(ctx context.Context) {
	if err := kv.Persist(ctx, s.snapshots, kv.KeyCart, s.lines); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithStore(ctx, storeName), "persist cart snapshot", err)
		}
	}
}

func sameSize(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
