package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/token-auth-service/internal/domain"
)

const userCacheKeyPrefix = "auth:user:"

type cachedUserRepository struct {
	next   UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps next with a Redis read-through cache keyed by
// username. A nil client or non-positive ttl returns next unchanged. Redis
// failures fall back to next.
func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if client == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedUserRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.next.Create(ctx, user); err != nil {
		return err
	}
	if err := r.client.Del(ctx, userCacheKey(user.Username)).Err(); err != nil {
		r.logger.Warn("user cache invalidate failed", zap.String("username", user.Username), zap.Error(err))
	}
	return nil
}

func (r *cachedUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	key := userCacheKey(username)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var user domain.User
		if jsonErr := json.Unmarshal(raw, &user); jsonErr == nil {
			return &user, nil
		}
		r.logger.Warn("dropping corrupt user cache entry", zap.String("username", username))
		_ = r.client.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("user cache read failed", zap.String("username", username), zap.Error(err))
	}

	user, err := r.next.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return user, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("user cache write failed", zap.String("username", username), zap.Error(err))
	}
	return user, nil
}

func userCacheKey(username string) string {
	return userCacheKeyPrefix + username
}
