package metadata

import (
	"context"
)

// Repository is a small key/value store for client-side settings and the
// serialized profile.
type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
