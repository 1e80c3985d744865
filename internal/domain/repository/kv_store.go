package repository

import (
	"context"
	"time"
)

// KVStore - durable string-keyed byte storage behind sessions, local favorites and caches.
// Redis, Badger, PostgreSQL, SQLite and in-memory backends implement it.
type KVStore interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// GetMany returns the values of the keys that exist.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	// Set stores the value; ttl == 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
