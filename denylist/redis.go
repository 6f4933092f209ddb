package denylist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the set used when NewRedisStore is given an empty key.
const DefaultRedisKey = "gcd:denylist"

// addBatchSize bounds the members sent in one SADD.
const addBatchSize = 500

// RedisStore keeps fingerprints in a single Redis set so several processes can
// share one denylist. Plaintext candidates never reach Redis.
type RedisStore struct {
	redis redis.UniversalClient
	key   string
}

// NewRedisStore returns a store over the set at key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: client, key: key}
}

// Add inserts words in batches.
func (s *RedisStore) Add(ctx context.Context, words ...string) error {
	for start := 0; start < len(words); start += addBatchSize {
		end := min(start+addBatchSize, len(words))

		members := make([]any, 0, end-start)
		for _, w := range words[start:end] {
			members = append(members, Fingerprint(w))
		}
		if err := s.redis.SAdd(ctx, s.key, members...).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// Contains reports set membership of the candidate's fingerprint.
func (s *RedisStore) Contains(ctx context.Context, candidate string) (bool, error) {
	ok, err := s.redis.SIsMember(ctx, s.key, Fingerprint(candidate)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ok, nil
}

// Remove deletes words if present.
func (s *RedisStore) Remove(ctx context.Context, words ...string) error {
	if len(words) == 0 {
		return nil
	}

	members := make([]any, 0, len(words))
	for _, w := range words {
		members = append(members, Fingerprint(w))
	}
	if err := s.redis.SRem(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Size returns the set cardinality.
func (s *RedisStore) Size(ctx context.Context) (int64, error) {
	n, err := s.redis.SCard(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}
