package redis

import (
	"context"
	"log"
	"sync"
	"time"
)

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// InitDefault initializes the default Redis client with the given configuration
func InitDefault(config *Config) {
	defaultOnce.Do(func() {
		defaultClient = New(config)

		// Periodically check the connection in the background
		go monitorConnection(defaultClient)
	})
}

// GetDefault returns the default Redis client instance
func GetDefault() *Client {
	if defaultClient == nil {
		panic("Default Redis client not initialized. Call InitDefault first.")
	}
	return defaultClient
}

// CloseAll closes all Redis clients
func CloseAll() {
	if defaultClient != nil {
		defaultClient.Close()
	}
}

// monitorConnection periodically checks the Redis connection and logs issues
func monitorConnection(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx)
		cancel()

		if err != nil {
			log.Printf("Redis health check failed: %v", err)
		}
	}
}

// Cache defines the subset of Redis operations services depend on.
// Useful for mocking in tests.
type Cache interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) (string, error)
	GetJSON(ctx context.Context, key string, result any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	DeleteMany(ctx context.Context, keys ...string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	SAdd(ctx context.Context, key string, members ...any) (int64, error)
	SRem(ctx context.Context, key string, members ...any) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)
	GetWithFallback(ctx context.Context, key string, fallback func(ctx context.Context) (any, error), expiration time.Duration) (any, error)
	AcquireLock(ctx context.Context, lockName string, expiration time.Duration, retryCount int, retryDelay time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockName string) (bool, error)
}

// Ensure Client implements Cache
var _ Cache = (*Client)(nil)
