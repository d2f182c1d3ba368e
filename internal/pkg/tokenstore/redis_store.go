// internal/pkg/tokenstore/redis_store.go
package tokenstore

import (
	"context"
	"fmt"
	"time"

	"gracehub-service/internal/domain/admin"

	"github.com/redis/go-redis/v9"
)

const (
	accessTokenKey  = "gracehub:tokens:access"
	refreshTokenKey = "gracehub:tokens:refresh"
)

// RedisStore is the redis-backed durable tier. Two string entries under
// fixed keys; absence of either reads back as no session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context) (admin.TokenPair, error) {
	access, err := r.client.Get(ctx, accessTokenKey).Result()
	if err == redis.Nil {
		return admin.TokenPair{}, nil
	}
	if err != nil {
		return admin.TokenPair{}, fmt.Errorf("failed to load access token: %w", err)
	}

	refresh, err := r.client.Get(ctx, refreshTokenKey).Result()
	if err == redis.Nil {
		return admin.TokenPair{}, nil
	}
	if err != nil {
		return admin.TokenPair{}, fmt.Errorf("failed to load refresh token: %w", err)
	}

	return admin.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (r *RedisStore) Save(ctx context.Context, pair admin.TokenPair) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, accessTokenKey, pair.AccessToken, r.ttl)
	pipe.Set(ctx, refreshTokenKey, pair.RefreshToken, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist token pair: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, accessTokenKey, refreshTokenKey).Err(); err != nil {
		return fmt.Errorf("failed to delete token pair: %w", err)
	}
	return nil
}
