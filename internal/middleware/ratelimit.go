package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterStore counts hits per key inside a fixed window.
type counterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

type visitor struct {
	count    int
	lastSeen time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{visitors: make(map[string]*visitor), now: time.Now}
}

func (s *memoryStore) Incr(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.lastSeen) > window {
		s.visitors[key] = &visitor{count: 1, lastSeen: now}
		return 1, nil
	}

	v.count++
	v.lastSeen = now
	return v.count, nil
}

func (s *memoryStore) sweep(window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, v := range s.visitors {
		if s.now().Sub(v.lastSeen) > window {
			delete(s.visitors, key)
		}
	}
}

type redisStore struct {
	client *redis.Client
	prefix string
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	k := s.prefix + key
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	return int(incr.Val()), nil
}

type RateLimiter struct {
	store     counterStore
	limit     int
	window    time.Duration
	logger    *slog.Logger
	stop      chan struct{}
	closeOnce sync.Once
}

// NewRateLimiter keeps counters in process memory. Close stops the sweeper.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	store := newMemoryStore()
	rl := &RateLimiter{store: store, limit: limit, window: window, logger: slog.Default(), stop: make(chan struct{})}

	// Cleanup goroutine
	ticker := time.NewTicker(window)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				store.sweep(window)
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// NewRedisRateLimiter shares counters across gateway instances.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  &redisStore{client: client, prefix: "gateway:ratelimit:"},
		limit:  limit,
		window: window,
		logger: slog.Default(),
	}
}

// Close stops background work. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		if rl.stop != nil {
			close(rl.stop)
		}
	})
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := rl.store.Incr(r.Context(), clientKey(r), rl.window)
		if err != nil {
			// Store errors fail open.
			rl.logger.Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
