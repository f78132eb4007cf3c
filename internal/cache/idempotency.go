package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	processingMarker = "PROCESSING"
	lockTTL          = 30 * time.Second
	resultTTL        = 24 * time.Hour
)

var (
	// ErrInFlight means another request holding the same key has not finished.
	ErrInFlight = errors.New("request with this idempotency key is in progress")
)

// StoredResponse is what gets replayed for a repeated idempotency key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore reserves keys before a request runs and remembers the
// response once it succeeds.
type IdempotencyStore interface {
	// Reserve returns (nil, nil) when the caller now owns key, a stored
	// response when key already completed, or ErrInFlight.
	Reserve(ctx context.Context, key string) (*StoredResponse, error)
	Complete(ctx context.Context, key string, resp StoredResponse) error
	Release(ctx context.Context, key string) error
}

type RedisIdempotency struct {
	Client *redis.Client
	Prefix string
}

func NewRedisIdempotency(client *redis.Client) RedisIdempotency {
	return RedisIdempotency{Client: client, Prefix: "hushryd:idempotency:"}
}

func (r RedisIdempotency) key(k string) string {
	return r.Prefix + k
}

func (r RedisIdempotency) Reserve(ctx context.Context, key string) (*StoredResponse, error) {
	acquired, err := r.Client.SetNX(ctx, r.key(key), processingMarker, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if acquired {
		return nil, nil
	}

	val, err := r.Client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; treat as still busy
		return nil, ErrInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if val == processingMarker {
		return nil, ErrInFlight
	}
	var stored StoredResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, fmt.Errorf("decode idempotency record: %w", err)
	}
	return &stored, nil
}

func (r RedisIdempotency) Complete(ctx context.Context, key string, resp StoredResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode idempotency record: %w", err)
	}
	return r.Client.Set(ctx, r.key(key), payload, resultTTL).Err()
}

func (r RedisIdempotency) Release(ctx context.Context, key string) error {
	return r.Client.Del(ctx, r.key(key)).Err()
}
