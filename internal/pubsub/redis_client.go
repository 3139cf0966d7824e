package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/config"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisClientImpl implements the storage.RedisClient interface
type RedisClientImpl struct {
	client       *redis.Client
	streamMaxLen int64
}

// NewRedisClient creates a new Redis client. Streams are trimmed to
// approximately streamMaxLen entries; zero leaves them untrimmed.
func NewRedisClient(cfg config.RedisConfig, streamMaxLen int64) (*RedisClientImpl, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
	)

	return &RedisClientImpl{client: rdb, streamMaxLen: streamMaxLen}, nil
}

func (r *RedisClientImpl) xaddArgs(stream string, values map[string]interface{}) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}
	if r.streamMaxLen > 0 {
		args.MaxLen = r.streamMaxLen
		args.Approx = true
	}
	return args
}

// PublishBatchToStream publishes multiple messages to a Redis stream using a pipeline
func (r *RedisClientImpl) PublishBatchToStream(ctx context.Context, stream string, messages []map[string]interface{}) error {
	if len(messages) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, msg := range messages {
		pipe.XAdd(ctx, r.xaddArgs(stream, msg))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish batch to stream %s: %w", stream, err)
	}

	return nil
}

// Set sets a key-value pair with TTL
func (r *RedisClientImpl) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.Set(ctx, key, jsonData, ttl).Err()
}

// GetJSON gets a JSON value and unmarshals it
func (r *RedisClientImpl) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Exists checks if a key exists
func (r *RedisClientImpl) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	return count > 0, err
}

// Close closes the Redis connection
func (r *RedisClientImpl) Close() error {
	return r.client.Close()
}
