package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestRedisIdempotencyLifecycle(t *testing.T) {
	addr := os.Getenv("HUSHRYD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HUSHRYD_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	store := NewRedisIdempotency(client)
	key := "test:" + uuid.NewString()
	defer store.Release(ctx, key)

	if got, err := store.Reserve(ctx, key); err != nil || got != nil {
		t.Fatalf("first reserve: got %v, %v", got, err)
	}
	if _, err := store.Reserve(ctx, key); !errors.Is(err, ErrInFlight) {
		t.Fatalf("second reserve: expected ErrInFlight, got %v", err)
	}

	want := StoredResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"id":"b1"}`)}
	if err := store.Complete(ctx, key, want); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := store.Reserve(ctx, key)
	if err != nil || got == nil {
		t.Fatalf("replay: got %v, %v", got, err)
	}
	if got.Status != 201 || string(got.Body) != `{"id":"b1"}` {
		t.Fatalf("unexpected replay %+v", got)
	}

	if err := store.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got, err := store.Reserve(ctx, key); err != nil || got != nil {
		t.Fatalf("reserve after release: got %v, %v", got, err)
	}
}
