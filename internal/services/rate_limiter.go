package services

import (
	"context"
	"sync"
	"time"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/advisor-site/lead-intake/internal/redisclient"
	"go.uber.org/zap"
)

// SubmissionLimiter decides whether a client may submit another form. When it
// refuses, retryAfter estimates when the next submission will be accepted.
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration)
}

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	retired    bool
	mutex      sync.Mutex
	logger     *logging.SafeLogger
}

// NewRateLimiter creates a new token bucket rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		logger:     logger,
	}
}

// Allow takes a token for key if one is available, otherwise it reports the
// wait until the next refill.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	allowed, wait, _ := rl.take(time.Now())
	rl.logDecision(key, allowed, wait)
	return allowed, wait
}

// take is Allow without logging. live is false once the bucket has been
// retired by cleanup; a retired bucket hands out nothing.
func (rl *RateLimiter) take(now time.Time) (allowed bool, wait time.Duration, live bool) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if rl.retired {
		return false, 0, false
	}
	rl.refill(now)
	if rl.tokens > 0 {
		rl.tokens--
		return true, 0, true
	}
	return false, rl.lastRefill.Add(rl.refillRate).Sub(now), true
}

func (rl *RateLimiter) logDecision(key string, allowed bool, wait time.Duration) {
	if allowed {
		rl.logger.Debug("rate limiter allowed request", zap.String("key", key))
		return
	}
	rl.logger.Warn("rate limiter rejected request",
		zap.String("key", key),
		zap.Int("max_tokens", rl.maxTokens),
		zap.Duration("retry_after", wait))
}

// refill adds whole tokens earned since the last refill. Partial intervals
// carry over so steady traffic is not starved.
func (rl *RateLimiter) refill(now time.Time) {
	tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate)
	if tokensToAdd <= 0 {
		return
	}
	rl.tokens += tokensToAdd
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
}

// retire marks a completely refilled bucket as retired and reports whether it
// did. The check and the mark happen under one lock, so no token taken
// concurrently is lost.
func (rl *RateLimiter) retire(now time.Time) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.refill(now)
	if rl.tokens < rl.maxTokens {
		return false
	}
	rl.retired = true
	return true
}

// MemoryRateLimiter keeps one token bucket per client key. A bucket allows
// limit submissions per window and refills evenly across it.
type MemoryRateLimiter struct {
	limit      int
	refillRate time.Duration
	buckets    sync.Map // map[string]*RateLimiter
	logger     *logging.SafeLogger
}

// NewMemoryRateLimiter creates a per-client in-memory limiter
func NewMemoryRateLimiter(limit int, window time.Duration, logger *logging.SafeLogger) *MemoryRateLimiter {
	refillRate := window / time.Duration(limit)
	if refillRate <= 0 {
		refillRate = time.Nanosecond
	}
	return &MemoryRateLimiter{
		limit:      limit,
		refillRate: refillRate,
		logger:     logger,
	}
}

// Allow checks the bucket for key, creating it on first use. A bucket retired
// by cleanup in the meantime is replaced by a fresh one.
func (m *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	for {
		value, _ := m.buckets.LoadOrStore(key, NewRateLimiter(m.limit, m.refillRate, m.logger))
		bucket := value.(*RateLimiter)
		allowed, wait, live := bucket.take(time.Now())
		if live {
			bucket.logDecision(key, allowed, wait)
			return allowed, wait
		}
		m.buckets.CompareAndDelete(key, bucket)
	}
}

// CleanupIdleBuckets drops buckets that have refilled completely. A dropped
// bucket would be recreated full, so this never changes a decision.
func (m *MemoryRateLimiter) CleanupIdleBuckets() int {
	now := time.Now()
	removed := 0
	m.buckets.Range(func(key, value interface{}) bool {
		if value.(*RateLimiter).retire(now) {
			if m.buckets.CompareAndDelete(key, value) {
				removed++
			}
		}
		return true
	})
	if removed > 0 {
		m.logger.Debug("cleaned up idle rate limit buckets", zap.Int("removed", removed))
	}
	return removed
}

// GetBucketCount returns the number of tracked clients
func (m *MemoryRateLimiter) GetBucketCount() int {
	count := 0
	m.buckets.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// StartCleanup runs CleanupIdleBuckets every interval until ctx is done
func (m *MemoryRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CleanupIdleBuckets()
			}
		}
	}()
}

// RedisRateLimiter counts submissions per client in fixed Redis windows, so
// the limit holds across replicas.
type RedisRateLimiter struct {
	client *redisclient.Client
	limit  int
	window time.Duration
	prefix string
	logger *logging.SafeLogger
}

// NewRedisRateLimiter creates a Redis-backed fixed window limiter
func NewRedisRateLimiter(client *redisclient.Client, limit int, window time.Duration, logger *logging.SafeLogger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "intake:ratelimit:",
		logger: logger,
	}
}

// Allow increments the window counter for key. Redis failures allow the
// request. A refusal reports the time left in the window.
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	count, err := r.client.IncrWindow(ctx, r.prefix+key, r.window)
	if err != nil {
		r.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("key", key),
			zap.Error(err))
		return true, 0
	}
	if count <= int64(r.limit) {
		return true, 0
	}

	retryAfter := r.window
	if ttl, err := r.client.TTL(ctx, r.prefix+key).Result(); err == nil && ttl > 0 {
		retryAfter = ttl
	}
	r.logger.Warn("rate limiter rejected request",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", r.limit),
		zap.Duration("retry_after", retryAfter))
	return false, retryAfter
}

// NewSubmissionLimiter picks the limiter for the configured store. A
// non-positive limit disables limiting and returns nil.
func NewSubmissionLimiter(client *redisclient.Client, limit int, window time.Duration, logger *logging.SafeLogger) SubmissionLimiter {
	if limit <= 0 {
		return nil
	}
	if client != nil {
		return NewRedisRateLimiter(client, limit, window, logger)
	}
	return NewMemoryRateLimiter(limit, window, logger)
}
