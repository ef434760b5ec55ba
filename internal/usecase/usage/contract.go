package usage

import (
	"context"
	"time"
)

// CounterStore persists daily search counters.
// IncrBy must be safe to call repeatedly; missing keys read as zero.
type CounterStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// Counter reads the number of searches an index served on a day.
type Counter interface {
	Count(ctx context.Context, index string, day time.Time) (int64, error)
}
