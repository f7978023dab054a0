package adapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the interface for Redis operations to enable mocking
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) *redis.StatusCmd

	// Get fetches the value of a key
	Get(ctx context.Context, key string) *redis.StringCmd

	// Set stores a value under a key with an optional expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd

	// FlushDB removes every key of the selected database
	FlushDB(ctx context.Context) *redis.StatusCmd

	// Close closes the Redis connection
	Close() error
}

// RealRedisClient wraps the actual Redis client
type RealRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return &RealRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping checks if Redis is reachable
func (r *RealRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

// Get fetches the value of a key
func (r *RealRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.client.Get(ctx, key)
}

// Set stores a value under a key with an optional expiration
func (r *RealRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.client.Set(ctx, key, value, expiration)
}

// FlushDB removes every key of the selected database
func (r *RealRedisClient) FlushDB(ctx context.Context) *redis.StatusCmd {
	return r.client.FlushDB(ctx)
}

// Close closes the Redis connection
func (r *RealRedisClient) Close() error {
	return r.client.Close()
}
