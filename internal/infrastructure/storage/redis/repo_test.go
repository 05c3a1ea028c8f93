package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"fxwatch/internal/domain"
)

// Needs a live server: FXWATCH_TEST_REDIS=127.0.0.1:6379
func TestRedisRepoRoundTrip(t *testing.T) {
	addr := os.Getenv("FXWATCH_TEST_REDIS")
	if addr == "" {
		t.Skip("FXWATCH_TEST_REDIS not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	prefix := "fxwatch-test-" + time.Now().Format("150405.000000")
	repo := New(rdb, prefix, time.Minute)
	defer repo.Close()
	defer rdb.Del(ctx, prefix+":snapshots")

	if _, ok, err := repo.Get(ctx, "USD/EUR"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	want := domain.Quote{Bid: "1.10", Ask: "1.12"}
	if err := repo.Put(ctx, "USD/EUR", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got, ok, err := repo.Get(ctx, "USD/EUR"); !ok || err != nil || got != want {
		t.Errorf("Get = %+v ok=%v err=%v", got, ok, err)
	}
	if keys, _ := repo.Keys(ctx); len(keys) != 1 || keys[0] != "USD/EUR" {
		t.Errorf("Keys = %v", keys)
	}
	if err := repo.Delete(ctx, "USD/EUR"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "USD/EUR"); ok {
		t.Error("key should be gone")
	}
}

func TestRedisRepoHashKey(t *testing.T) {
	if got := New(nil, "", 0).keyHash; got != "fxwatch:snapshots" {
		t.Errorf("default hash key = %q", got)
	}
	if got := New(nil, "desk1", 0).keyHash; got != "desk1:snapshots" {
		t.Errorf("hash key = %q", got)
	}
}
