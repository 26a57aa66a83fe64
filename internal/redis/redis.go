package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Commands is the part of the go-redis client the store uses.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func NewClient(redisAddress string, redisUsername string, redisPassword string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Ping checks the connection once at startup.
func Ping(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Store keeps font settings blobs in redis. Keys never expire.
type Store struct {
	cmd Commands
}

func NewStore(cmd Commands) *Store {
	return &Store{cmd: cmd}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.cmd.Set(ctx, key, value, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to add key to redis")
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
