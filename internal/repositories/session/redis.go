package session

import (
	"context"
	"encoding/json"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/honor-run-forge/internal/redis"
)

// Key pattern: session:{key}
const sessionKeyPrefix = "session:"

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for session blobs
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves a blob by key
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.Key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("session %s not found", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal session record")
	}

	return &GetOutput{Record: &record}, nil
}

// Put stores a blob without expiry
func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Blob) == 0 {
		return nil, errors.InvalidArgument(errBlobEmpty)
	}

	record := &Record{
		Key:       input.Key,
		Blob:      input.Blob,
		UpdatedAt: r.clock.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session record")
	}

	if err := r.client.Set(ctx, r.buildKey(input.Key), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store session in Redis")
	}

	return &PutOutput{Record: record}, nil
}

// Delete removes a blob
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.Key)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

// buildKey creates the Redis key for a session blob
func (r *redisRepository) buildKey(key string) string {
	return sessionKeyPrefix + key
}
