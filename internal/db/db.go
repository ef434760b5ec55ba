package db

import (
	"context"
	"time"
)

// Store is the database facade used by the server wiring.
type Store interface {
	Pinger
	CounterStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CounterStore holds integer counters that expire after their first write.
type CounterStore interface {
	// IncrWithTTL adds delta to key. A ttl > 0 is applied only when the key has none yet.
	IncrWithTTL(ctx context.Context, key string, delta int64, ttl time.Duration) error
	// Counters returns one value per key, 0 for keys that do not exist.
	Counters(ctx context.Context, keys ...string) ([]int64, error)
}
