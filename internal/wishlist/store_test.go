package wishlist

import (
	"context"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vasstra/vasstra-storefront/pkg/enums"
	"github.com/vasstra/vasstra-storefront/pkg/kv"
)

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) Notify(_ context.Context, _ enums.NotificationLevel, message string) {
	s.messages = append(s.messages, message)
}

func saree() Item {
	return Item{
		ID:              7,
		Name:            "Banarasi Saree",
		Price:           decimal.NewFromInt(2499),
		OriginalPrice:   decimal.NewFromInt(2999),
		Category:        "ethnic",
		DiscountPercent: 17,
	}
}

func newTestStore(t *testing.T) (*Store, *stubNotifier) {
	t.Helper()
	notifier := &stubNotifier{}
	store, err := NewStore(context.Background(), kv.NewMemory(), notifier, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, notifier
}

func TestAddDeduplicatesByID(t *testing.T) {
	store, notifier := newTestStore(t)
	ctx := context.Background()

	store.Add(ctx, saree())
	store.Add(ctx, saree())

	if store.TotalItems() != 1 {
		t.Fatalf("expected one item, got %d", store.TotalItems())
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("duplicate add must not notify again, got %v", notifier.messages)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	before := store.Items()
	store.Toggle(ctx, saree())
	if !store.Contains(7) {
		t.Fatal("first toggle should add")
	}
	store.Toggle(ctx, saree())
	if store.Contains(7) {
		t.Fatal("second toggle should remove")
	}
	if !reflect.DeepEqual(before, store.Items()) {
		t.Fatalf("double toggle must restore prior state: %+v", store.Items())
	}
}

func TestRemoveMissingIsSilent(t *testing.T) {
	store, notifier := newTestStore(t)
	store.Remove(context.Background(), 42)
	if len(notifier.messages) != 0 {
		t.Fatalf("expected silence, got %v", notifier.messages)
	}
}

func TestPersistHydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshots := kv.NewMemory()

	first, err := NewStore(ctx, snapshots, nil, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	first.Add(ctx, saree())
	other := saree()
	other.ID = 8
	other.Name = "Chanderi Dupatta"
	first.Add(ctx, other)

	second, err := NewStore(ctx, snapshots, nil, nil, nil)
	if err != nil {
		t.Fatalf("rehydrate store: %v", err)
	}
	if second.TotalItems() != 2 {
		t.Fatalf("expected two hydrated items, got %d", second.TotalItems())
	}
	if !second.Contains(7) || !second.Contains(8) {
		t.Fatalf("hydrated membership mismatch: %+v", second.Items())
	}
}
