package usage

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val     int64
	expires time.Time
}

// Memory is a process-local counter store with the same expiry rules as Store.
type Memory struct {
	mu   sync.Mutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemory creates an in-memory counter store. A zero ttl keeps keys forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{data: make(map[string]entry), ttl: ttl, now: time.Now}
}

// IncrBy increments the key, starting its TTL on first write.
func (m *Memory) IncrBy(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.data[key]
	if !ok || m.expired(e, now) {
		e = entry{}
		if m.ttl > 0 {
			e.expires = now.Add(m.ttl)
		}
	}
	e.val += val
	m.data[key] = e
	m.sweep(now)
	return nil
}

// Get returns the counter value, 0 for missing or expired keys.
func (m *Memory) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok || m.expired(e, m.now()) {
		return 0, nil
	}
	return e.val, nil
}

func (m *Memory) expired(e entry, now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

func (m *Memory) sweep(now time.Time) {
	for k, e := range m.data {
		if m.expired(e, now) {
			delete(m.data, k)
		}
	}
}
