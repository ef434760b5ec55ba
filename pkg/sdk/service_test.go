package localsearch

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestService_GetIndexReturnsSameInstance(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	a, err := svc.GetIndex(ctx, "settings", BackendLinearMap)
	if err != nil {
		t.Fatalf("GetIndex: %v", err)
	}
	_, _ = a.AddOrUpdate(ctx, settingsDocs)

	b, err := svc.GetIndex(ctx, "settings", BackendLinearMap)
	if err != nil {
		t.Fatalf("GetIndex: %v", err)
	}
	if a != b {
		t.Error("expected the same index instance")
	}
	if b.GetSize() != 3 {
		t.Errorf("size = %d, want 3", b.GetSize())
	}
	if _, ok := a.(*SyncIndex); !ok {
		t.Errorf("service index is %T, want *SyncIndex", a)
	}
}

func TestService_UnsupportedBackend(t *testing.T) {
	svc := NewService()

	_, err := svc.GetIndex(context.Background(), "apps", BackendInvertedIndex)
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
	if _, err := svc.Lookup("apps"); !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("failed index must not be registered, got %v", err)
	}
}

func TestService_LookupAndIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	_, _ = svc.GetIndex(ctx, "settings", BackendLinearMap)
	_, _ = svc.GetIndex(ctx, "apps", BackendLinearMap)

	if _, err := svc.Lookup("settings"); err != nil {
		t.Errorf("Lookup(settings): %v", err)
	}
	if _, err := svc.Lookup("help"); !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
	if got := svc.IDs(); !slices.Equal(got, []string{"apps", "settings"}) {
		t.Errorf("IDs() = %v", got)
	}
}

func TestService_SharedMetricsAcrossIndexes(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	svc := NewService(WithPrometheus(reg))

	if _, err := svc.GetIndex(ctx, "settings", BackendLinearMap); err != nil {
		t.Fatalf("GetIndex(settings): %v", err)
	}
	if _, err := svc.GetIndex(ctx, "apps", BackendLinearMap); err != nil {
		t.Fatalf("GetIndex(apps): %v", err)
	}
}

func TestService_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	idx, _ := svc.GetIndex(ctx, "settings", BackendLinearMap)
	_, _ = idx.AddOrUpdate(ctx, settingsDocs)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				idx.Find(ctx, "wifi", 5)
				return
			}
			_, _ = idx.AddOrUpdate(ctx, []Document{{ID: "sound", Tags: []string{"Sound"}}})
		}()
	}
	wg.Wait()

	if idx.GetSize() != 4 {
		t.Errorf("size = %d, want 4", idx.GetSize())
	}
}

func TestSynchronized_Idempotent(t *testing.T) {
	idx, _ := NewIndex("settings")
	s := Synchronized(idx)
	if Synchronized(s) != s {
		t.Error("wrapping a SyncIndex must return it unchanged")
	}
	if s.ID() != "settings" || s.Backend() != BackendLinearMap {
		t.Errorf("unexpected identity: %s %s", s.ID(), s.Backend())
	}
}
