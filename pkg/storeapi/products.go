package storeapi

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const endpointProducts = "products"

// ListProducts fetches up to limit catalog entries. The call is bounded
// by its own timeout so a slow catalog search degrades instead of
// hanging; callers treat an error as an empty result.
func (c *Client) ListProducts(ctx context.Context, limit int, timeout time.Duration) ([]RawProduct, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	endpoint := endpointProducts
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpointProducts, limit)
	}

	var resp struct {
		Success  bool         `json:"success"`
		Products []RawProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
