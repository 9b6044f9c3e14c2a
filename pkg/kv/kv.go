package kv

import (
	"context"
	"encoding/json"
)

// Well-known snapshot keys. These must stay stable within a deployment
// because persisted state outlives process restarts.
const (
	KeyCart           = "cart"
	KeyWishlist       = "wishlist"
	KeyRecentlyViewed = "recently_viewed"
	KeyAuthToken      = "auth_token"
	KeyAuthUser       = "auth_user"
)

// Store is the persistence contract for state snapshots. Implementations
// hold opaque byte payloads; callers own the encoding.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger exposes the health-check surface shared by the backends that
// have a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Hydrate loads and unmarshals the snapshot stored under key into dst.
// A missing key, a load failure, or a malformed payload all leave dst
// untouched and report false: prior-state corruption is never fatal.
func Hydrate(ctx context.Context, store Store, key string, dst any) bool {
	if store == nil {
		return false
	}
	raw, ok, err := store.Load(ctx, key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

// Persist marshals src and saves the full snapshot under key.
func Persist(ctx context.Context, store Store, key string, src any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, raw)
}
