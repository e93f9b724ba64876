package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeai-tech/catalog-api/internal/config"
	"github.com/yeai-tech/catalog-api/internal/logger"
	"github.com/yeai-tech/catalog-api/internal/viewguard"
)

const redisPingTimeout = 5 * time.Second

// SetupViewGuard creates the per-session view guard. Redis backs it when
// enabled and reachable; otherwise an in-process guard takes over so view
// counting keeps working on a single instance. The returned cleanup stops
// whichever guard was built.
func SetupViewGuard(cfg *config.Config, log logger.Logger) (viewguard.Guard, func()) {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("Redis not available, falling back to in-process view guard",
				logger.String("redis_address", cfg.Redis.Address),
				logger.Error(err),
			)
			_ = client.Close()
		} else {
			log.Info("View guard using Redis",
				logger.String("redis_address", cfg.Redis.Address),
			)
			guard := viewguard.NewRedisGuard(client, cfg.Redis.GuardTTL, log)
			return guard, func() { _ = client.Close() }
		}
	}

	guard := viewguard.NewMemoryGuard(cfg.Redis.GuardTTL)
	return guard, guard.Close
}
