package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session state sticks around as long as a returning visitor's cookie:
// 30 days, refreshed on every write.
const sessionTTL = 30 * 24 * time.Hour

// RedisStore keeps session state in Redis under "session:<sid>:<key>".
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects to Redis and pings it before returning the store.
func NewRedis(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func sessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	return s.client.Set(ctx, sessionKey(sessionID, key), value, sessionTTL).Err()
}

func (s *RedisStore) SetNX(ctx context.Context, sessionID, key, value string) (bool, error) {
	return s.client.SetNX(ctx, sessionKey(sessionID, key), value, sessionTTL).Result()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = sessionKey(sessionID, k)
	}
	return s.client.Del(ctx, full...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
