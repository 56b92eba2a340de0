package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	catalogListKey          = "catalog:services"
	catalogServiceKeyPrefix = "catalog:service:"
)

// CachedServiceCatalog keeps catalog reads in Redis for ttl. Redis errors are
// logged and the read falls through to the wrapped catalog.
type CachedServiceCatalog struct {
	next   interfaces.IServiceCatalog
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.IServiceCatalog = (*CachedServiceCatalog)(nil)

func NewCachedServiceCatalog(next interfaces.IServiceCatalog, client *redis.Client, ttl time.Duration) *CachedServiceCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedServiceCatalog{next: next, client: client, ttl: ttl}
}

func (c *CachedServiceCatalog) GetByID(ctx context.Context, id string) (entities.Service, error) {
	key := catalogServiceKeyPrefix + id
	var svc entities.Service
	if c.load(ctx, key, &svc) {
		return svc, nil
	}

	svc, err := c.next.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	// Misses are not cached so a newly added service is visible at once.
	if svc.Found() {
		c.store(ctx, key, svc)
	}
	return svc, nil
}

func (c *CachedServiceCatalog) List(ctx context.Context) ([]entities.Service, error) {
	var list []entities.Service
	if c.load(ctx, catalogListKey, &list) {
		return list, nil
	}

	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, catalogListKey, list)
	return list, nil
}

func (c *CachedServiceCatalog) load(ctx context.Context, key string, dst any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("[catalog][cache] redis get failed")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("[catalog][cache] cached value unreadable")
		return false
	}
	return true
}

func (c *CachedServiceCatalog) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("[catalog][cache] redis set failed")
	}
}
