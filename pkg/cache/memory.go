package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

func (m *memoryItem) expired(now time.Time) bool {
	return m.ttl > 0 && now.Sub(m.storedAt) > m.ttl
}

// Memory implements Store with a mutex-guarded in-process map. Expired
// entries are evicted lazily on Get; there is no sweeper, no size bound and
// no LRU. TTL does not reset on Get. Lives for the whole process, nothing
// survives a restart.
type Memory struct {
	mu  sync.Mutex
	m   map[string]*memoryItem
	now func() time.Time
}

// NewMemory creates an in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		m:   make(map[string]*memoryItem),
		now: time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.m[key]
	if !ok {
		return ErrCacheMiss
	}
	if item.expired(c.now()) {
		delete(c.m, key)
		return ErrCacheMiss
	}
	return json.Unmarshal(item.data, dest)
}

func (c *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = &memoryItem{
		data:     data,
		storedAt: c.now(),
		ttl:      ttl,
	}
	return nil
}
