// Package ratelimit provides per-key request limiting behind a swappable store.
// MemoryStore suits a single instance; RedisStore shares the counters between
// every instance of the service.
package ratelimit

import (
	"context"
	"time"
)

// Store decides whether one more request for key fits the limit.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Policy is a budget of Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// PerMinute returns a Policy allowing n requests per minute.
func PerMinute(n int) Policy {
	return Policy{Limit: n, Window: time.Minute}
}

// RetryAfter is the wait suggested to a rejected caller, never under a second.
func (p Policy) RetryAfter() time.Duration {
	if p.Limit <= 0 {
		return p.Window
	}
	return max(p.Window/time.Duration(p.Limit), time.Second)
}
