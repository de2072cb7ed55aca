package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient wraps go-redis. A nil *RedisClient behaves as an always-missing cache.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisClient{Client: client}, nil
}

// Get returns the cached bytes and whether the key was present.
func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.Client == nil {
		return nil, false, nil
	}
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix removes every key starting with prefix. SCAN keeps it non-blocking.
func (c *RedisClient) DeletePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.Client == nil {
		return nil
	}
	iter := c.Client.Scan(ctx, 0, prefix+"*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 200 {
			if err := c.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.Client.Del(ctx, keys...).Err()
	}
	return nil
}

// Incr bumps the counter stored at key and returns its new value.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if c == nil || c.Client == nil {
		return 0, nil
	}
	return c.Client.Incr(ctx, key).Result()
}

func (c *RedisClient) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
