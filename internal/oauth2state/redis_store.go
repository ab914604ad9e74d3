package oauth2state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed handshake store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauth2state:",
	}
}

func (r *RedisStore) key(state string) string {
	return r.prefix + state
}

func (r *RedisStore) Create(ctx context.Context, state string, h Handshake) error {
	if state == "" || h.Verifier == "" {
		return fmt.Errorf("oauth2state: missing state or verifier")
	}

	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("oauth2state: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(state), data, TTL).Err()
}

func (r *RedisStore) Consume(ctx context.Context, state string) (*Handshake, error) {
	val, err := r.client.GetDel(ctx, r.key(state)).Result()
	if err == redis.Nil {
		return nil, nil // unknown or expired
	}
	if err != nil {
		return nil, err
	}

	var h Handshake
	if err := json.Unmarshal([]byte(val), &h); err != nil {
		return nil, fmt.Errorf("oauth2state: failed to unmarshal: %w", err)
	}

	return &h, nil
}
