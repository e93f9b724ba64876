package viewguard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeai-tech/catalog-api/internal/logger"
)

// RedisGuard backs the view-guard with Redis SETNX + TTL, so the guard is
// shared across service instances and entries expire on their own.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewRedisGuard(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisGuard {
	return &RedisGuard{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (g *RedisGuard) FirstView(ctx context.Context, sessionKey, postID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(sessionKey, postID), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark view: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, sessionKey, postID string) {
	if err := g.client.Del(ctx, guardKey(sessionKey, postID)).Err(); err != nil {
		g.log.Warn("failed to release view-guard entry",
			logger.String("session", sessionKey),
			logger.String("post_id", postID),
			logger.Error(err),
		)
	}
}
