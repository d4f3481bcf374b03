package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on narrow sub-interfaces (ISP); the facade exists for the
// composition root.
type Store interface {
	Pinger
	HashStore
	KVStore
	SetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Incr(ctx context.Context, key string) (int64, error)
}

// SetStore provides the set algebra the tag-group search is built on.
// The *Store operations write their result into a destination key owned by
// the caller; Del cleans such temporary keys up.
type SetStore interface {
	SUnionStore(ctx context.Context, dst string, keys ...string) error
	SInterStore(ctx context.Context, dst string, keys ...string) error
	SDiffStore(ctx context.Context, dst string, keys ...string) error
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}
