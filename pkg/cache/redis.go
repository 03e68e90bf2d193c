package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces keys written by Redis.
const DefaultRedisPrefix = "authclient:userinfo:"

// Redis stores JSON-encoded values in Redis without expiry, so several
// processes can share one cache.
type Redis[V any] struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// NewRedis wraps an existing go-redis client.
func NewRedis[V any](client redis.UniversalClient, opts ...RedisOption) *Redis[V] {
	o := &redisOptions{prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(o)
	}
	return &Redis[V]{client: client, prefix: o.prefix}
}

// Get loads and decodes the value under key. A missing key is not an error.
func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, errors.Join(ErrBackend, err)
	}

	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false, errors.Join(ErrCorruptEntry, fmt.Errorf("key %q: %w", key, err))
	}
	return v, true, nil
}

// Set encodes value and stores it under key with no expiry.
func (c *Redis[V]) Set(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, 0).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (c *Redis[V]) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}
