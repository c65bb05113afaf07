package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"salonpos/backend/internal/store"
)

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("SALON_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set SALON_TEST_REDIS_ADDR to run redis integration test")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("salon-it-%d:", time.Now().UnixNano())
	s := New(addr, "", 0, prefix)
	t.Cleanup(func() {
		_ = s.client.Del(ctx, prefix+"salonStylists").Err()
		_ = s.Close()
	})
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, err := s.Get(ctx, "salonStylists"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := s.Set(ctx, "salonStylists", []byte(`[{"id":1,"name":"Ana"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "salonStylists")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":1,"name":"Ana"}]` {
		t.Fatalf("unexpected value %s", got)
	}
}
