package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheHelper(client, "report:"), mr
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Rate  float64 `json:"rate"`
		Total int     `json:"total"`
	}

	want := payload{Rate: 75.0, Total: 4}
	if err := helper.Set(ctx, "daily:2025-01-20", want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := helper.Get(ctx, "daily:2025-01-20", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestCache(t)

	var dest map[string]any
	err := helper.Get(context.Background(), "nope", &dest)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get missing key error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "report:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client = %v, want nil", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete with nil client = %v, want nil", err)
	}

	var dest string
	if err := helper.Get(ctx, "k", &dest); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get with nil client = %v, want ErrCacheNotAvailable", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int{"present": 3}, nil
	}

	var first map[string]int
	if err := helper.CacheOrExecute(ctx, "totals", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute (miss): %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetch calls after miss = %d, want 1", calls)
	}
	if first["present"] != 3 {
		t.Errorf("fetched value = %v", first)
	}

	// The set after a miss is asynchronous.
	deadline := time.Now().Add(time.Second)
	for {
		exists, err := helper.Exists(ctx, "totals")
		if err != nil {
			t.Fatalf("Exists: %v", err)
		}
		if exists {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cache entry never materialized")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var second map[string]int
	if err := helper.CacheOrExecute(ctx, "totals", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute (hit): %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls after hit = %d, want 1", calls)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"daily:2025-01-20", "daily:2025-01-21", "weekly:2025-W03"} {
		if err := helper.Set(ctx, key, 1, time.Minute); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "daily:*"); err != nil {
		t.Fatalf("InvalidatePattern: %v", err)
	}

	for key, want := range map[string]bool{
		"daily:2025-01-20": false,
		"daily:2025-01-21": false,
		"weekly:2025-W03":  true,
	} {
		exists, err := helper.Exists(ctx, key)
		if err != nil {
			t.Fatalf("Exists %s: %v", key, err)
		}
		if exists != want {
			t.Errorf("Exists(%s) = %v, want %v", key, exists, want)
		}
	}
}

func TestCacheManager_NilClient(t *testing.T) {
	cm := NewCacheManager(nil)

	if err := cm.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck = %v, want ErrCacheNotAvailable", err)
	}
	if err := cm.InvalidateAttendance(context.Background()); err != nil {
		t.Errorf("InvalidateAttendance with nil client = %v, want nil", err)
	}
}
