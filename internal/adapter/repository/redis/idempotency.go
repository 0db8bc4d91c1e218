package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const inFlightMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
// Retried mutations replay the stored response instead of moving money
// twice.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet claims the key for the current request. It returns true
// when an earlier request already claimed it, with the stored response
// body, or nil while that request is still in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	claim := []byte(inFlightMarker)
	if response != nil {
		claim = response
	}

	set, err := s.client.SetNX(ctx, fullKey, claim, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		// The earlier claim expired between SetNX and Get.
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	if string(existing) == inFlightMarker {
		return true, nil, nil
	}
	return true, existing, nil
}

// Update overwrites the claim with the final response body.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
