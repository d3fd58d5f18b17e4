package repository

import (
	"context"
	"time"
)

// Store persists JSON documents under string keys with a time-to-live.
// Get returns errors.ErrCacheMiss when the key is absent or expired.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}
