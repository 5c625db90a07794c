package localstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cla:"

// RedisStore is the durable implementation for shared deployments where the
// portal runs behind more than one kiosk.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at the given URI and verifies the
// connection.
func NewRedisStore(redisURI string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return val, err
}

// Set implements Store.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error { return r.client.Close() }
