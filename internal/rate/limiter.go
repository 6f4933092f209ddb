package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generateKeyPrefix = "gcg:"

// Config holds the generation throttle budget.
type Config struct {
	// MaxPerWindow is the number of passwords one client may generate per window.
	MaxPerWindow int
	Window       time.Duration
}

// Limiter caps generated passwords per client using Redis fixed-window counters.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a rate [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Consume charges n generated passwords to clientID. It returns ErrRateLimited
// once the window total exceeds MaxPerWindow; the rejected request still counts
// so a client hammering the limit stays limited until the window expires.
func (l *Limiter) Consume(ctx context.Context, clientID string, n int) error {
	if n <= 0 {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, generateKey(clientID), int64(n), l.config.Window)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxPerWindow) {
		return ErrRateLimited
	}

	return nil
}

// Remaining returns how many passwords clientID may still generate in the
// current window. Missing keys mean a full budget.
func (l *Limiter) Remaining(ctx context.Context, clientID string) (int, error) {
	count, err := l.redis.Get(ctx, generateKey(clientID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return l.config.MaxPerWindow, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	remaining := int64(l.config.MaxPerWindow) - count
	if remaining < 0 {
		return 0, nil
	}
	return int(remaining), nil
}

// Reset clears the window for clientID.
func (l *Limiter) Reset(ctx context.Context, clientID string) error {
	if err := l.redis.Del(ctx, generateKey(clientID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error) {
	count, err := l.redis.IncrBy(ctx, key, n).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == n {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}

func generateKey(clientID string) string {
	return generateKeyPrefix + clientID
}
