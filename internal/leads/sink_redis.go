package leads

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list leads are pushed onto.
const DefaultRedisKey = "leads:inbound"

// RedisSink pushes JSON-encoded leads onto a Redis list for downstream workers.
type RedisSink struct {
	client redis.Cmdable
	key    string
}

func NewRedisSink(client redis.Cmdable, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	payload, err := json.Marshal(lead)
	if err != nil {
		return false, fmt.Errorf("leads: marshal lead: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return false, fmt.Errorf("leads: redis rpush %s: %w", s.key, err)
	}
	return true, nil
}
