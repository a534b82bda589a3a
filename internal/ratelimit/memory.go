package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long an untouched key keeps its bucket.
const idleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore is a token bucket per key held in process memory.
// Buckets idle for longer than idleTTL are evicted on later calls.
type MemoryStore struct {
	mu        sync.Mutex
	policy    Policy
	buckets   map[string]*bucket
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore returns a MemoryStore enforcing p.
func NewMemoryStore(p Policy) *MemoryStore {
	return &MemoryStore{
		policy:  p,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// WithClock replaces the store's clock. It is meant for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	s.lastSweep = now()
	return s
}

// Allow consumes one token from key's bucket.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.limit(), max(s.policy.Limit, 1))}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// Len reports how many keys currently hold a bucket.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *MemoryStore) limit() rate.Limit {
	if s.policy.Limit <= 0 || s.policy.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(s.policy.Window / time.Duration(s.policy.Limit))
}

// sweep must be called with mu held.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for k, b := range s.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(s.buckets, k)
		}
	}
}
