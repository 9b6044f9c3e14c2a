package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/vasstra/vasstra-storefront/pkg/errors"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
	"github.com/vasstra/vasstra-storefront/pkg/metrics"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
)

const storeName = "orders"

type backendClient interface {
	ListMyOrders(ctx context.Context, token string) ([]storeapi.OrderPayload, error)
	CreateOrder(ctx context.Context, token string, req storeapi.CreateOrderRequest) (*storeapi.OrderPayload, error)
}

type tokenSource interface {
	Token() string
}

type sessionEvents interface {
	Subscribe(fn func(loggedIn bool))
}

// CreateInput is everything checkout collects for a new order besides
// the payment selection.
type CreateInput struct {
	Items    []Item
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	Address  AddressInput
}

// Store caches the signed-in shopper's order history. Unlike the cart
// and wishlist it holds no snapshot of its own: the backend is the
// source of truth and the cache is rebuilt by wholesale replacement.
type Store struct {
	mu     sync.Mutex
	orders []Order

	client  backendClient
	tokens  tokenSource
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

func NewStore(client backendClient, tokens tokenSource, logg *logger.Logger, m *metrics.StoreMetrics) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source required")
	}
	return &Store{
		client:  client,
		tokens:  tokens,
		logg:    logg,
		metrics: m,
	}, nil
}

// BindSession couples the cache to the session lifecycle: login triggers
// a refresh, logout drops the cache.
func (s *Store) BindSession(ctx context.Context, events sessionEvents) {
	events.Subscribe(func(loggedIn bool) {
		if !loggedIn {
			s.Reset()
			return
		}
		if err := s.Refresh(ctx); err != nil {
			s.logError(ctx, "refresh orders after login", err)
		}
	})
}

// Refresh fetches the full order list and replaces the cache. Without a
// token there is nothing to fetch and nothing to clear. A fetch failure
// keeps the cached list; concurrent refreshes are benign because the
// replacement is wholesale.
func (s *Store) Refresh(ctx context.Context) error {
	token := s.tokens.Token()
	if token == "" {
		if s.logg != nil {
			s.logg.Info(s.logg.WithStore(ctx, storeName), "skipping order refresh, no active session")
		}
		return nil
	}

	payloads, err := s.client.ListMyOrders(ctx, token)
	if err != nil {
		return fmt.Errorf("list my orders: %w", err)
	}

	fetched := make([]Order, 0, len(payloads))
	for _, p := range payloads {
		fetched = append(fetched, fromPayload(p))
	}

	s.mu.Lock()
	s.orders = fetched
	s.mu.Unlock()
	return nil
}

// Create submits a new order and returns its identifier. The shipping
// address is normalized before it leaves the process. Success triggers a
// refresh so the cache includes the new order; a failed refresh does not
// fail the creation.
func (s *Store) Create(ctx context.Context, input CreateInput, paymentMethod string, paymentDetails map[string]any) (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")
	}

	req := storeapi.CreateOrderRequest{
		Items:           toItemPayloads(input.Items),
		Subtotal:        input.Subtotal,
		Shipping:        input.Shipping,
		TotalAmount:     input.Total,
		ShippingAddress: NormalizeAddress(input.Address),
		PaymentMethod:   paymentMethod,
		PaymentDetails:  paymentDetails,
	}

	payload, err := s.client.CreateOrder(ctx, token, req)
	if err != nil {
		return "", err
	}
	s.metrics.IncMutation(storeName, "create")

	if err := s.Refresh(ctx); err != nil {
		s.logError(ctx, "refresh orders after create", err)
	}

	if payload.OrderID != "" {
		return payload.OrderID, nil
	}
	return payload.ID, nil
}

// Get looks an order up by either of its identifiers.
func (s *Store) Get(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id || o.AltID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Orders returns a copy of the cached order list.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Reset drops the cached list without touching the backend.
func (s *Store) Reset() {
	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(s.logg.WithStore(ctx, storeName), msg, err)
	}
}
