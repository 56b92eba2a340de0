package cache

import (
	"context"
	"strings"
	"time"

	appconfig "lavacar_booking/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient returns nil when REDIS_ADDR is empty or the server does not
// answer a ping; callers then run without the catalog cache.
func NewRedisClient(ctx context.Context, cfg appconfig.Redis) *redis.Client {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		logrus.Info("[cache] REDIS_ADDR not set; catalog cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", addr).Warn("[cache] redis unreachable; catalog cache disabled")
		_ = client.Close()
		return nil
	}
	logrus.WithField("addr", addr).Info("[cache] redis client initialized")
	return client
}
