package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/localsearch/internal/db"
)

// IncrWithTTL sends INCRBY and EXPIRE NX in one pipeline.
func (s *Store) IncrWithTTL(ctx context.Context, key string, delta int64, ttl time.Duration) error {
	incr := s.b().Incrby().Key(key).Increment(delta).Build()
	if ttl <= 0 {
		if err := s.do(ctx, incr).Error(); err != nil {
			return &db.Error{Op: db.OpIncrBy, Err: err}
		}
		return nil
	}

	secs := int64(ttl / time.Second)
	if secs < 1 {
		secs = 1
	}
	expire := s.b().Expire().Key(key).Seconds(secs).Nx().Build()
	res := s.client.DoMulti(ctx, incr, expire)
	if err := res[0].Error(); err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	if err := res[1].Error(); err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}

// Counters reads all keys with a single MGET.
func (s *Store) Counters(ctx context.Context, keys ...string) ([]int64, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	msgs, err := s.do(ctx, s.b().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpMGet, Err: err}
	}
	if len(msgs) != len(keys) {
		return nil, &db.Error{Op: db.OpMGet, Err: fmt.Errorf("got %d values for %d keys", len(msgs), len(keys))}
	}

	out := make([]int64, len(keys))
	for i := range msgs {
		if msgs[i].IsNil() {
			continue
		}
		v, err := msgs[i].AsInt64()
		if err != nil {
			return nil, &db.Error{Op: db.OpMGet, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		out[i] = v
	}
	return out, nil
}
