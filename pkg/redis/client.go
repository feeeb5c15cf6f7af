package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCacheExpiry is the default expiration time for cached items
	DefaultCacheExpiry = 3600 // 1 hour in seconds
)

// Client represents a Redis client with connection management
type Client struct {
	client        *redis.Client
	errorCount    int32
	lastErrorTime int64
	mu            sync.Mutex
	locks         map[string]string // acquired locks by instance
	scripts       map[string]*redis.Script
	config        *Config
}

// Config holds Redis client configuration
type Config struct {
	Host                string
	Port                int
	DB                  int
	Password            string
	MaxConnections      int
	ConnTimeout         time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	HealthCheckInterval time.Duration
}

// DefaultConfig returns default Redis configuration
func DefaultConfig() *Config {
	return &Config{
		Host:                "localhost",
		Port:                6379,
		DB:                  0,
		Password:            "",
		MaxConnections:      100,
		ConnTimeout:         2 * time.Second,
		ReadTimeout:         3 * time.Second,
		WriteTimeout:        3 * time.Second,
		HealthCheckInterval: 15 * time.Second,
	}
}

// New creates a new Redis client with the given configuration
func New(config *Config) *Client {
	client := &Client{
		locks:   make(map[string]string),
		scripts: make(map[string]*redis.Script),
		config:  config,
	}

	client.initClient()
	client.registerScripts()

	return client
}

func (c *Client) initClient() {
	c.client = redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", c.config.Host, c.config.Port),
		Password:        c.config.Password,
		DB:              c.config.DB,
		PoolSize:        c.config.MaxConnections,
		MinIdleConns:    10,
		DialTimeout:     c.config.ConnTimeout,
		ReadTimeout:     c.config.ReadTimeout,
		WriteTimeout:    c.config.WriteTimeout,
		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	})
}

// registerScripts registers Lua scripts for atomic operations
func (c *Client) registerScripts() {
	// Safe lock release: only the owner may delete
	c.scripts["releaseLock"] = redis.NewScript(`
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`)

	// Scan and delete keys by pattern
	c.scripts["deleteByPattern"] = redis.NewScript(`
		local cursor = "0"
		local keyCount = 0
		repeat
			local result = redis.call("SCAN", cursor, "MATCH", ARGV[1], "COUNT", 100)
			cursor = result[1]
			local keys = result[2]
			if #keys > 0 then
				keyCount = keyCount + #keys
				redis.call("DEL", unpack(keys))
			end
		until cursor == "0"
		return keyCount
	`)
}

// checkAndResetClient resets the connection after a burst of errors
func (c *Client) checkAndResetClient() {
	currentTime := time.Now().Unix()
	errorCount := atomic.LoadInt32(&c.errorCount)
	lastErrorTime := atomic.LoadInt64(&c.lastErrorTime)

	if errorCount > 5 && (currentTime-lastErrorTime) < 60 {
		c.mu.Lock()
		defer c.mu.Unlock()

		log.Printf("Too many Redis errors, resetting connection")
		if c.client != nil {
			_ = c.client.Close()
		}

		c.initClient()
		c.registerScripts()

		atomic.StoreInt32(&c.errorCount, 0)
	}
}

func (c *Client) recordError() {
	atomic.StoreInt64(&c.lastErrorTime, time.Now().Unix())
	atomic.AddInt32(&c.errorCount, 1)
}

// Ping checks if Redis is responding
func (c *Client) Ping(ctx context.Context) error {
	c.checkAndResetClient()

	_, err := c.client.Ping(ctx).Result()
	if err != nil {
		c.recordError()
		return fmt.Errorf("redis ping error: %w", err)
	}

	return nil
}

// Get retrieves a value by key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	c.checkAndResetClient()

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Key doesn't exist but not an error
		}
		c.recordError()
		return "", fmt.Errorf("redis get error: %w", err)
	}

	return val, nil
}

// GetJSON retrieves and parses a JSON value
func (c *Client) GetJSON(ctx context.Context, key string, result any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}

	if data == "" {
		return redis.Nil
	}

	err = json.Unmarshal([]byte(data), result)
	if err != nil {
		return fmt.Errorf("json unmarshal error: %w", err)
	}

	return nil
}

// Set sets a value with expiration
func (c *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	c.checkAndResetClient()

	err := c.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		c.recordError()
		return fmt.Errorf("redis set error: %w", err)
	}

	return nil
}

// SetJSON serializes and stores a JSON value
func (c *Client) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	return c.Set(ctx, key, data, expiration)
}

// Delete removes a key
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	c.checkAndResetClient()

	result, err := c.client.Del(ctx, key).Result()
	if err != nil {
		c.recordError()
		return false, fmt.Errorf("redis delete error: %w", err)
	}

	return result > 0, nil
}

// DeleteMany deletes multiple keys
func (c *Client) DeleteMany(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	c.checkAndResetClient()

	result, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("redis delete many error: %w", err)
	}

	return result, nil
}

// TTL gets the remaining time to live of a key
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	c.checkAndResetClient()

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("redis ttl error: %w", err)
	}

	if ttl == -2*time.Second {
		return 0, redis.Nil // Key doesn't exist
	}

	return ttl, nil
}

// Expire sets a key's time to live
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.checkAndResetClient()

	result, err := c.client.Expire(ctx, key, expiration).Result()
	if err != nil {
		c.recordError()
		return false, fmt.Errorf("redis expire error: %w", err)
	}

	return result, nil
}

// SAdd adds members to a set
func (c *Client) SAdd(ctx context.Context, key string, members ...any) (int64, error) {
	c.checkAndResetClient()

	result, err := c.client.SAdd(ctx, key, members...).Result()
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("redis sadd error: %w", err)
	}

	return result, nil
}

// SRem removes members from a set
func (c *Client) SRem(ctx context.Context, key string, members ...any) (int64, error) {
	c.checkAndResetClient()

	result, err := c.client.SRem(ctx, key, members...).Result()
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("redis srem error: %w", err)
	}

	return result, nil
}

// SMembers gets all members of a set
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	c.checkAndResetClient()

	result, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		c.recordError()
		return nil, fmt.Errorf("redis smembers error: %w", err)
	}

	return result, nil
}

// DeleteByPattern deletes all keys matching a pattern
func (c *Client) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	c.checkAndResetClient()

	script := c.scripts["deleteByPattern"]
	result, err := script.Run(ctx, c.client, []string{}, pattern).Int64()
	if err != nil {
		c.recordError()
		return 0, fmt.Errorf("redis delete by pattern error: %w", err)
	}

	return result, nil
}

// AcquireLock acquires a distributed lock
func (c *Client) AcquireLock(ctx context.Context, lockName string, expiration time.Duration, retryCount int, retryDelay time.Duration) (bool, error) {
	lockID := uuid.New().String()
	lockKey := fmt.Sprintf("lock:%s", lockName)

	for attempt := 0; attempt < retryCount; attempt++ {
		c.checkAndResetClient()

		acquired, err := c.client.SetNX(ctx, lockKey, lockID, expiration).Result()
		if err != nil {
			c.recordError()
			log.Printf("Error acquiring lock %s: %v", lockName, err)

			if attempt < retryCount-1 {
				time.Sleep(retryDelay * 2)
			}
			continue
		}

		if acquired {
			c.mu.Lock()
			c.locks[lockKey] = lockID
			c.mu.Unlock()
			return true, nil
		}

		if attempt < retryCount-1 {
			time.Sleep(retryDelay)
		}
	}

	return false, nil
}

// ReleaseLock releases a distributed lock
func (c *Client) ReleaseLock(ctx context.Context, lockName string) (bool, error) {
	lockKey := fmt.Sprintf("lock:%s", lockName)

	c.mu.Lock()
	lockID, exists := c.locks[lockKey]
	c.mu.Unlock()

	if !exists {
		log.Printf("Attempted to release lock %s that wasn't acquired by this instance", lockName)
		return false, nil
	}

	c.checkAndResetClient()

	script := c.scripts["releaseLock"]
	result, err := script.Run(ctx, c.client, []string{lockKey}, lockID).Int64()
	if err != nil {
		c.recordError()
		return false, fmt.Errorf("error releasing lock: %w", err)
	}

	c.mu.Lock()
	delete(c.locks, lockKey)
	c.mu.Unlock()

	return result == 1, nil
}

// GetWithFallback gets data from cache with callback fallback
func (c *Client) GetWithFallback(ctx context.Context, key string, fallback func(ctx context.Context) (any, error), expiration time.Duration) (any, error) {
	var result any
	err := c.GetJSON(ctx, key, &result)
	if err == nil {
		return result, nil
	}

	if err != redis.Nil {
		log.Printf("Error getting data from cache: %v", err)
	}

	data, err := fallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback function error: %w", err)
	}

	if data == nil {
		return nil, nil
	}

	// Cache the result without blocking the caller
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if expiration == 0 {
			expiration = DefaultCacheExpiry * time.Second
		}

		if err := c.SetJSON(cacheCtx, key, data, expiration); err != nil {
			log.Printf("Failed to cache data for key %s: %v", key, err)
		}
	}()

	return data, nil
}

// Close closes the Redis client
func (c *Client) Close() error {
	return c.client.Close()
}
