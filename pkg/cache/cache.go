package cache

import (
	"context"
	"time"
)

// Cache defines the key operations the service needs from a shared cache.
type Cache interface {
	// SetNX stores value under key only if key does not exist yet and
	// reports whether it did.
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
