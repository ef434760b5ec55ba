package usage

import (
	"context"
	"errors"
	"testing"
	"time"
)

type incrCall struct {
	key   string
	delta int64
	ttl   time.Duration
}

type fakeCounters struct {
	data    map[string]int64
	incrErr error
	getErr  error
	incrs   []incrCall
}

func newFakeCounters() *fakeCounters { return &fakeCounters{data: make(map[string]int64)} }

func (f *fakeCounters) IncrWithTTL(_ context.Context, key string, delta int64, ttl time.Duration) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	f.incrs = append(f.incrs, incrCall{key, delta, ttl})
	f.data[key] += delta
	return nil
}

func (f *fakeCounters) Counters(_ context.Context, keys ...string) ([]int64, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]int64, len(keys))
	for i, k := range keys {
		out[i] = f.data[k]
	}
	return out, nil
}

func TestStore_IncrByPassesRetention(t *testing.T) {
	db := newFakeCounters()
	s := New(db, 48*time.Hour)

	if err := s.IncrBy(context.Background(), "k", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.incrs) != 1 {
		t.Fatalf("expected 1 increment, got %d", len(db.incrs))
	}
	if got := db.incrs[0]; got != (incrCall{"k", 3, 48 * time.Hour}) {
		t.Errorf("unexpected increment: %+v", got)
	}
}

func TestStore_IncrByError(t *testing.T) {
	db := newFakeCounters()
	db.incrErr = errors.New("READONLY")
	err := New(db, time.Hour).IncrBy(context.Background(), "k", 1)
	if !errors.Is(err, db.incrErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestStore_Get(t *testing.T) {
	db := newFakeCounters()
	db.data["k"] = 42
	s := New(db, time.Hour)

	v, err := s.Get(context.Background(), "k")
	if err != nil || v != 42 {
		t.Errorf("Get(k) = %d, %v; want 42, nil", v, err)
	}

	v, err = s.Get(context.Background(), "missing")
	if err != nil || v != 0 {
		t.Errorf("Get(missing) = %d, %v; want 0, nil", v, err)
	}

	db.getErr = errors.New("timeout")
	if _, err := s.Get(context.Background(), "k"); err == nil {
		t.Error("expected read error")
	}
}

func TestMemory_IncrByAndGet(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	_ = m.IncrBy(ctx, "a", 2)
	_ = m.IncrBy(ctx, "a", 3)

	if v, _ := m.Get(ctx, "a"); v != 5 {
		t.Errorf("Get(a) = %d, want 5", v)
	}
	if v, _ := m.Get(ctx, "b"); v != 0 {
		t.Errorf("Get(b) = %d, want 0", v)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.IncrBy(ctx, "a", 1)
	now = now.Add(30 * time.Minute)
	_ = m.IncrBy(ctx, "a", 1)
	if v, _ := m.Get(ctx, "a"); v != 2 {
		t.Errorf("Get(a) = %d, want 2 (TTL must not reset)", v)
	}

	now = now.Add(31 * time.Minute)
	if v, _ := m.Get(ctx, "a"); v != 0 {
		t.Errorf("Get(a) after expiry = %d, want 0", v)
	}

	_ = m.IncrBy(ctx, "b", 1)
	if _, ok := m.data["a"]; ok {
		t.Error("expired key not swept")
	}
}
