package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript keeps a sorted set of request timestamps per key.
// KEYS[1] = counter key
// ARGV[1] = now (unix milliseconds)
// ARGV[2] = window (milliseconds)
// ARGV[3] = limit
// ARGV[4] = unique member for this request
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)
if redis.call("ZCARD", key) >= limit then
    return 0
end

redis.call("ZADD", key, now, ARGV[4])
redis.call("PEXPIRE", key, window)
return 1
`)

// RedisStore is a sliding-window log shared through Redis.
type RedisStore struct {
	client *redis.Client
	policy Policy
	prefix string
	now    func() time.Time
}

// NewRedisStore returns a store using client. Keys are namespaced by prefix.
func NewRedisStore(client *redis.Client, p Policy, prefix string) *RedisStore {
	return &RedisStore{client: client, policy: p, prefix: prefix, now: time.Now}
}

// OpenRedisStore parses a redis:// URL and returns a connected store.
func OpenRedisStore(ctx context.Context, url string, p Policy) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("ratelimit.OpenRedisStore: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ratelimit.OpenRedisStore: ping: %w", err)
	}
	return NewRedisStore(client, p, "giropro:ratelimit:"), nil
}

// Allow records the request and reports whether it fits the window.
// A rejected request is not recorded.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	if s.policy.Limit <= 0 || s.policy.Window <= 0 {
		return true, nil
	}
	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		s.now().UnixMilli(),
		s.policy.Window.Milliseconds(),
		s.policy.Limit,
		uuid.NewString(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("ratelimit.RedisStore.Allow: %w", err)
	}
	return res == 1, nil
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
