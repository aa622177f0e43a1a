// Copyright (c) 2026 Knihovna. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/platform/apperr"
	"github.com/knihovna/api/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Each session is one key under [constants.RedisPrefixSession] holding the
// owning user's ID; Redis TTL handles expiry, so there is no sweep job.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Create(ctx context.Context, tokenHash string, userID primitive.ObjectID, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(ctx, key, userID.Hex(), ttl).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Get(ctx context.Context, tokenHash string) (primitive.ObjectID, error) {
	key := constants.RedisPrefixSession + tokenHash

	raw, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return primitive.NilObjectID, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return primitive.NilObjectID, fmt.Errorf("loading session: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("corrupt session payload: %w", err)
	}
	return userID, nil
}

func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
