package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	coreconfig "github.com/m3rciful/petshop/core/config"
	"github.com/m3rciful/petshop/core/logger"
)

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	// Prefix namespaces keys as "<prefix>:<userID>".
	Prefix string
	// TTL expires idle sessions; zero keeps them until cleared.
	TTL time.Duration
}

// RedisStore keeps JSON encoded sessions in Redis so they survive restarts.
type RedisStore[T any] struct {
	client RedisClient
	opts   RedisOptions
}

// NewRedisStore wraps client; every Set refreshes the TTL.
func NewRedisStore[T any](client RedisClient, opts RedisOptions) *RedisStore[T] {
	if opts.Prefix == "" {
		opts.Prefix = "session"
	}
	return &RedisStore[T]{client: client, opts: opts}
}

func (s *RedisStore[T]) key(userID int64) string {
	return s.opts.Prefix + ":" + strconv.FormatInt(userID, 10)
}

// Get implements Store.
func (s *RedisStore[T]) Get(ctx context.Context, userID int64) (T, bool, error) {
	var zero T
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("state get %d: %w", userID, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("state decode %d: %w", userID, err)
	}
	return v, true, nil
}

// Set implements Store.
func (s *RedisStore[T]) Set(ctx context.Context, userID int64, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("state encode %d: %w", userID, err)
	}
	if err := s.client.Set(ctx, s.key(userID), raw, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("state set %d: %w", userID, err)
	}
	return nil
}

// Clear implements Store.
func (s *RedisStore[T]) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("state clear %d: %w", userID, err)
	}
	return nil
}

// NewRedisClient connects to the configured server and verifies it answers PING.
func NewRedisClient(ctx context.Context, cfg coreconfig.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	logger.TG.Info("redis connected",
		slog.String("event", "state.redis"),
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
	)
	return rdb, nil
}

// Open returns the session store selected by cfg. The returned close func releases
// the backend connection and is never nil.
func Open[T any](ctx context.Context, cfg coreconfig.StateConfig) (Store[T], func() error, error) {
	if cfg.Backend != coreconfig.StateRedis {
		return NewMemoryStore[T](), func() error { return nil }, nil
	}
	rdb, err := NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	store := NewRedisStore[T](rdb, RedisOptions{
		Prefix: cfg.Redis.Prefix,
		TTL:    time.Duration(cfg.TTLSeconds) * time.Second,
	})
	return store, rdb.Close, nil
}
