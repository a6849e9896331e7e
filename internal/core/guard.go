package core

import (
	"context"
	"time"

	"playpal-backend-go/pkg/cache"
)

// TransitionGuard makes sure one observed transition is notified at most once
// even when the platform delivers the same event again.
type TransitionGuard interface {
	// Claim returns true the first time key is seen.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so a redelivery may claim it again.
	Release(ctx context.Context, key string) error
}

// NoopGuard grants every claim. Used when no cache is configured.
type NoopGuard struct{}

func (NoopGuard) Claim(context.Context, string) (bool, error) { return true, nil }
func (NoopGuard) Release(context.Context, string) error       { return nil }

const transitionKeyPrefix = "playpal:transition:"

// CacheGuard claims transitions with SET NX in a shared cache.
type CacheGuard struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheGuard creates a CacheGuard whose claims expire after ttl.
func NewCacheGuard(c cache.Cache, ttl time.Duration) *CacheGuard {
	return &CacheGuard{cache: c, ttl: ttl}
}

func (g *CacheGuard) Claim(ctx context.Context, key string) (bool, error) {
	return g.cache.SetNX(ctx, transitionKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), g.ttl)
}

func (g *CacheGuard) Release(ctx context.Context, key string) error {
	return g.cache.Delete(ctx, transitionKeyPrefix+key)
}
