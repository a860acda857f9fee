package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/8bitsats/Agentic-DNA/pkg/interfaces"
	"github.com/8bitsats/Agentic-DNA/pkg/retry"
)

// RedisStore implements a Redis-backed outcome store. Outcomes for a
// conversation live in a list keyed by conversation ID.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	executor  *retry.Executor
}

// RedisOption represents an option for configuring the Redis store
type RedisOption func(*RedisStore)

// WithTTL sets the TTL for conversation keys
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisStore) {
		r.ttl = ttl
	}
}

// WithKeyPrefix sets a custom prefix for Redis keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		r.keyPrefix = prefix
	}
}

// WithRetryPolicy configures retry behavior for Redis writes
func WithRetryPolicy(policy *retry.Policy) RedisOption {
	return func(r *RedisStore) {
		r.executor = retry.NewExecutor(policy)
	}
}

// NewRedisStore creates a new Redis-backed outcome store
func NewRedisStore(client *redis.Client, options ...RedisOption) *RedisStore {
	store := &RedisStore{
		client:    client,
		ttl:       24 * time.Hour,
		keyPrefix: "dna:outcomes:",
		executor:  retry.NewExecutor(retry.NewPolicy()),
	}

	for _, option := range options {
		option(store)
	}

	return store
}

func (r *RedisStore) key(conversationID string) string {
	return r.keyPrefix + conversationID
}

// WriteOutcome persists an outcome at the tail of the conversation's list
func (r *RedisStore) WriteOutcome(ctx context.Context, outcome interfaces.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	key := r.key(outcome.ConversationID)
	err = r.executor.Execute(ctx, func() error {
		if err := r.client.RPush(ctx, key, data).Err(); err != nil {
			return err
		}
		r.client.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write outcome to redis: %w", err)
	}
	return nil
}

// Outcomes retrieves up to limit recent outcomes for a conversation,
// oldest first
func (r *RedisStore) Outcomes(ctx context.Context, conversationID string, limit int) ([]interfaces.Outcome, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	values, err := r.client.LRange(ctx, r.key(conversationID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read outcomes from redis: %w", err)
	}

	outcomes := make([]interfaces.Outcome, 0, len(values))
	for _, value := range values {
		var outcome interfaces.Outcome
		if err := json.Unmarshal([]byte(value), &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// Clear removes all outcomes for a conversation
func (r *RedisStore) Clear(ctx context.Context, conversationID string) error {
	if err := r.client.Del(ctx, r.key(conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to clear outcomes: %w", err)
	}
	return nil
}
