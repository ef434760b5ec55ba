package usage

import (
	"context"
	"fmt"
	"time"
)

// counters is the consumer interface over the database (ISP).
type counters interface {
	IncrWithTTL(ctx context.Context, key string, delta int64, ttl time.Duration) error
	Counters(ctx context.Context, keys ...string) ([]int64, error)
}

// Store keeps daily search counters in Redis. Keys expire ttl after their
// first increment, so a day's counter lives exactly as long as retention.
type Store struct {
	db  counters
	ttl time.Duration
}

// New creates a counter store.
func New(db counters, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// IncrBy adds val to key, starting its retention clock on first write.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if err := s.db.IncrWithTTL(ctx, key, val, s.ttl); err != nil {
		return fmt.Errorf("usage incr %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value, 0 if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	vals, err := s.db.Counters(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("usage get %s: %w", key, err)
	}
	return vals[0], nil
}
