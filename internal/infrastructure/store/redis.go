package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ordertrack/backend/internal/domain/order"
)

const defaultKeyPrefix = "order:"

// RedisStore implements order.Repository on top of Redis. Records are stored
// as JSON under a prefixed key, one key per order identifier; single-key GET
// and SET keep the repository key-atomic without explicit locking.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStore creates a Redis-backed order store and verifies the
// connection before returning.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}, nil
}

// Upsert stores the record, fully replacing any prior record under the key.
func (s *RedisStore) Upsert(ctx context.Context, o order.Order) (order.Order, error) {
	payload, err := json.Marshal(o)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to serialize order: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+o.OrderID, payload, 0).Err(); err != nil {
		return order.Order{}, fmt.Errorf("failed to store order: %w", err)
	}
	return o, nil
}

// Get retrieves a record by order identifier.
func (s *RedisStore) Get(ctx context.Context, orderID string) (order.Order, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+orderID).Bytes()
	if err == redis.Nil {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to fetch order: %w", err)
	}

	var o order.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return order.Order{}, fmt.Errorf("failed to deserialize order: %w", err)
	}
	return o, nil
}

// Ping reports whether Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements order.Repository
var _ order.Repository = (*RedisStore)(nil)
