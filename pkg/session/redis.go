package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	// KeyPrefix names the hash holding the session
	KeyPrefix string
}

// RedisStore keeps the session in a Redis hash so several terminals share one login
type RedisStore struct {
	rdb    *redis.Client
	key    string
	addr   string
	logger ectologger.Logger
}

// NewRedisStore creates the store without connecting; Start verifies the connection.
func NewRedisStore(cfg RedisConfig, logger ectologger.Logger) *RedisStore {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	key := cfg.KeyPrefix
	if key == "" {
		key = "collably:session"
	}

	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		key:    key,
		addr:   addr,
		logger: logger,
	}
}

func (r *RedisStore) GetName() string     { return "redis-session" }
func (r *RedisStore) DependsOn() []string { return nil }

// Start pings Redis
func (r *RedisStore) Start(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", r.addr, err)
	}
	r.logger.Infof("Connected to Redis at %s", r.addr)
	return nil
}

// Stop closes the Redis connection
func (r *RedisStore) Stop(_ context.Context) error {
	return r.rdb.Close()
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.HGet(ctx, r.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.rdb.HSet(ctx, r.key, key, value).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.rdb.HDel(ctx, r.key, key).Err()
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key).Err()
}
