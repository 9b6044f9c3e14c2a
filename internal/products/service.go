package products

import (
	"context"
	"fmt"
	"time"

	"github.com/vasstra/vasstra-storefront/pkg/logger"
	"github.com/vasstra/vasstra-storefront/pkg/storeapi"
)

type catalogClient interface {
	ListProducts(ctx context.Context, limit int, timeout time.Duration) ([]storeapi.RawProduct, error)
}

// Service is the catalog read boundary. Catalog reads are best-effort:
// a backend failure degrades to an empty result so browsing surfaces
// render without products instead of erroring.
type Service struct {
	client  catalogClient
	timeout time.Duration
	logg    *logger.Logger
}

func NewService(client catalogClient, timeout time.Duration, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	return &Service{
		client:  client,
		timeout: timeout,
		logg:    logg,
	}, nil
}

// List fetches up to limit products, normalized. Errors are logged and
// reported as an empty slice.
func (s *Service) List(ctx context.Context, limit int) []Product {
	raws, err := s.client.ListProducts(ctx, limit, s.timeout)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithStore(ctx, "products"), "list products", err)
		}
		return []Product{}
	}

	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}
