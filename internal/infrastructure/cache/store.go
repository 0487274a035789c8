package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// Store is a string key-value store with per-entry expiration
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewStore builds the store selected by the cache driver. The "none"
// driver returns a nil Store, which callers treat as caching disabled.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Cache.Driver {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		rs, err := NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
