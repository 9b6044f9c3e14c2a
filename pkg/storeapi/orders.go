package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/vasstra/vasstra-storefront/pkg/errors"
)

const (
	endpointMyOrders    = "orders/my-orders"
	endpointCreateOrder = "orders"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ListMyOrders fetches the authenticated shopper's full order history.
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]OrderPayload, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required")
	}

	var resp struct {
		Orders []OrderPayload `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, endpointMyOrders, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// CreateOrder submits a new order and returns the created payload.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*OrderPayload, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required")
	}
	if err := validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order payload")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order payload")
	}

	var resp struct {
		Order OrderPayload `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, endpointCreateOrder, token, bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
