package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/vasstra/vasstra-storefront/pkg/errors"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
)

type stubClient struct {
	orders    []storeapi.OrderPayload
	listErr   error
	created   *storeapi.OrderPayload
	createErr error

	listCalls  int
	lastCreate storeapi.CreateOrderRequest
}

func (c *stubClient) ListMyOrders(_ context.Context, _ string) ([]storeapi.OrderPayload, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.orders, nil
}

func (c *stubClient) CreateOrder(_ context.Context, _ string, req storeapi.CreateOrderRequest) (*storeapi.OrderPayload, error) {
	c.lastCreate = req
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.created, nil
}

type stubTokens struct {
	token string
}

func (s *stubTokens) Token() string { return s.token }

type stubSession struct {
	fn func(bool)
}

func (s *stubSession) Subscribe(fn func(loggedIn bool)) { s.fn = fn }

func TestRefreshWithoutTokenLeavesListEmpty(t *testing.T) {
	client := &stubClient{orders: []storeapi.OrderPayload{{ID: "doc-1"}}}
	store, err := NewStore(client, &stubTokens{}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("expected silent skip, got %v", err)
	}
	if client.listCalls != 0 {
		t.Fatalf("expected no backend call without a token")
	}
	if got := store.Orders(); len(got) != 0 {
		t.Fatalf("expected empty order list, got %d", len(got))
	}
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	client := &stubClient{orders: []storeapi.OrderPayload{
		{ID: "doc-1", OrderID: "VST-1001", Status: "shipped"},
		{ID: "doc-2", OrderID: "VST-1002", Status: "weird-status"},
	}}
	store, err := NewStore(client, &stubTokens{token: "tok"}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	got := store.Orders()
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].Status.String() != "shipped" {
		t.Fatalf("expected shipped status, got %s", got[0].Status)
	}
	if got[1].Status.String() != "pending" {
		t.Fatalf("expected unknown status to fall back to pending, got %s", got[1].Status)
	}
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	client := &stubClient{orders: []storeapi.OrderPayload{{ID: "doc-1", OrderID: "VST-1001"}}}
	store, err := NewStore(client, &stubTokens{token: "tok"}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	client.listErr = pkgerrors.New(pkgerrors.CodeDependency, "backend unreachable")
	if err := store.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}

	if got := store.Orders(); len(got) != 1 || got[0].ID != "doc-1" {
		t.Fatalf("expected cache to survive failed refresh, got %+v", got)
	}
}

func TestCreateWithoutTokenFailsUnauthorized(t *testing.T) {
	store, err := NewStore(&stubClient{}, &stubTokens{}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	_, err = store.Create(context.Background(), CreateInput{}, "cod", nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestCreateNormalizesAddressAndRefreshes(t *testing.T) {
	client := &stubClient{
		created: &storeapi.OrderPayload{ID: "doc-9", OrderID: "VST-1009"},
		orders:  []storeapi.OrderPayload{{ID: "doc-9", OrderID: "VST-1009"}},
	}
	store, err := NewStore(client, &stubTokens{token: "tok"}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	input := CreateInput{
		Items:    []Item{{ProductID: 12, Name: "Silk Kurta", Price: decimal.NewFromInt(1000), Quantity: 1}},
		Subtotal: decimal.NewFromInt(1000),
		Shipping: decimal.NewFromInt(50),
		Total:    decimal.NewFromInt(1050),
		Address: AddressInput{
			FirstName:  "Asha",
			LastName:   "Rao",
			Addr:       "14 Lake Road",
			City:       "Pune",
			State:      "MH",
			PostalCode: "411001",
		},
	}

	id, err := store.Create(context.Background(), input, "cod", nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != "VST-1009" {
		t.Fatalf("expected order id VST-1009, got %q", id)
	}

	addr := client.lastCreate.ShippingAddress
	if addr.Name != "Asha Rao" {
		t.Fatalf("expected joined name, got %q", addr.Name)
	}
	if addr.Address != "14 Lake Road" {
		t.Fatalf("expected addr fallback, got %q", addr.Address)
	}
	if addr.Zip != "411001" {
		t.Fatalf("expected postalCode fallback, got %q", addr.Zip)
	}
	if client.listCalls != 1 {
		t.Fatalf("expected create to trigger a refresh, got %d list calls", client.listCalls)
	}
	if _, found := store.Get("VST-1009"); !found {
		t.Fatalf("expected new order in cache after refresh")
	}
}

func TestCreatePropagatesServerMessage(t *testing.T) {
	client := &stubClient{createErr: pkgerrors.New(pkgerrors.CodeBackend, "insufficient stock for Silk Kurta")}
	store, err := NewStore(client, &stubTokens{token: "tok"}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	_, err = store.Create(context.Background(), CreateInput{}, "cod", nil)
	if err == nil {
		t.Fatalf("expected create error")
	}
	if pkgerrors.As(err).Message() != "insufficient stock for Silk Kurta" {
		t.Fatalf("expected server message to propagate, got %v", err)
	}
	if client.listCalls != 0 {
		t.Fatalf("expected no refresh after failed create")
	}
}

func TestGetMatchesEitherIdentifier(t *testing.T) {
	client := &stubClient{orders: []storeapi.OrderPayload{{ID: "doc-1", OrderID: "VST-1001"}}}
	store, err := NewStore(client, &stubTokens{token: "tok"}, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if _, found := store.Get("doc-1"); !found {
		t.Fatalf("expected lookup by document id")
	}
	if _, found := store.Get("VST-1001"); !found {
		t.Fatalf("expected lookup by order id")
	}
	if _, found := store.Get("VST-9999"); found {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestBindSessionDrivesRefreshAndReset(t *testing.T) {
	client := &stubClient{orders: []storeapi.OrderPayload{{ID: "doc-1"}}}
	tokens := &stubTokens{token: "tok"}
	store, err := NewStore(client, tokens, nil, nil)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	session := &stubSession{}
	store.BindSession(context.Background(), session)

	session.fn(true)
	if got := store.Orders(); len(got) != 1 {
		t.Fatalf("expected login to populate cache, got %d", len(got))
	}

	session.fn(false)
	if got := store.Orders(); len(got) != 0 {
		t.Fatalf("expected logout to reset cache, got %d", len(got))
	}
}
