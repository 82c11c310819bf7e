package cache

import (
	"context"
	"time"
)

// Store is a string key-value cache with per-key expiry
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	// Get reports found=false for missing or expired keys
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Delete(ctx context.Context, key string) error
	Close() error
}
