package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Store defines the cache operations the fetch path needs: read-through get
// and unconditional set. Implementations must hand back defensive copies so a
// caller mutating its result never corrupts the cached original; both
// implementations here guarantee that by round-tripping values through JSON.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
