package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
)

const (
	listKey       = "portfolio:projects"
	itemKeyPrefix = "portfolio:project:"
	defaultTTL    = 5 * time.Minute
)

// ProjectCache is a Redis-backed read-through cache for project reads.
// Every miss or Redis failure falls through to the database; the cache
// is never authoritative.
type ProjectCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

func NewProjectCache(rdb *redis.Client, log *logrus.Logger) *ProjectCache {
	if log == nil {
		log = logrus.New()
	}
	return &ProjectCache{rdb: rdb, ttl: defaultTTL, log: log}
}

func itemKey(id string) string { return itemKeyPrefix + id }

func (c *ProjectCache) GetList(ctx context.Context) ([]domain.Project, bool) {
	data, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		c.miss(err, listKey)
		return nil, false
	}

	var ps []domain.Project
	if err := json.Unmarshal(data, &ps); err != nil {
		c.log.WithError(err).Warn("corrupt project list cache entry")
		return nil, false
	}
	return ps, true
}

func (c *ProjectCache) SetList(ctx context.Context, ps []domain.Project) {
	data, err := json.Marshal(ps)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Debug("failed to cache project list")
	}
}

func (c *ProjectCache) Get(ctx context.Context, id string) (*domain.Project, bool) {
	data, err := c.rdb.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		c.miss(err, itemKey(id))
		return nil, false
	}

	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		c.log.WithError(err).Warn("corrupt project cache entry")
		return nil, false
	}
	return &p, true
}

func (c *ProjectCache) Set(ctx context.Context, p *domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, itemKey(p.ID), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Debug("failed to cache project")
	}
}

// Invalidate drops both the item entry and the list entry; any write
// changes the list ordering or contents.
func (c *ProjectCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, listKey, itemKey(id)).Err(); err != nil {
		c.log.WithError(err).Debug("failed to invalidate project cache")
	}
}

func (c *ProjectCache) miss(err error, key string) {
	if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).WithField("key", key).Debug("project cache read failed")
	}
}
