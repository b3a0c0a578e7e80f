package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"appointer/internal/config"
	"appointer/internal/core/domain"
	"appointer/internal/core/ports/out"
)

type WeekGridCacheEntry struct {
	Grid      *domain.WeekGrid
	Timestamp time.Time
}

// WeekGridCache - LRU кэш посчитанных сеток недели с коротким TTL.
// Сетка зависит от "сейчас" и от занятых событий, поэтому долго жить в
// кэше она не может; дополнительно запись сбрасывается по сообщениям
// из внешних систем
type WeekGridCache struct {
	cache  *lru.Cache[string, *WeekGridCacheEntry]
	ttl    time.Duration
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewWeekGridCache(cfg *config.Config, logger out.LoggerPort) (*WeekGridCache, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[string, *WeekGridCacheEntry](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &WeekGridCache{
		cache:  lruCache,
		ttl:    time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		logger: logger.WithModule("WeekGridCache"),
	}, nil
}

func cacheKey(bookingTypeID string, monday time.Time) string {
	return bookingTypeID + "|" + monday.Format("2006-01-02")
}

func (c *WeekGridCache) GetWeekGrid(ctx context.Context, bookingTypeID string, monday time.Time) (*domain.WeekGrid, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := cacheKey(bookingTypeID, monday)
	entry, exists := c.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"key": key,
		})
		return nil, false
	}

	if time.Since(entry.Timestamp) > c.ttl {
		c.logger.Debug("cache.get.expired", out.LogFields{
			"key": key,
		})
		c.cache.Remove(key)
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"key": key,
	})
	return entry.Grid, true
}

func (c *WeekGridCache) StoreWeekGrid(ctx context.Context, bookingTypeID string, grid *domain.WeekGrid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(bookingTypeID, grid.Monday)
	c.cache.Add(key, &WeekGridCacheEntry{
		Grid:      grid,
		Timestamp: time.Now(),
	})

	c.logger.Debug("cache.store", out.LogFields{
		"key": key,
	})
}

func (c *WeekGridCache) InvalidateBookingType(ctx context.Context, bookingTypeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := bookingTypeID + "|"
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}

	c.logger.Debug("cache.invalidate.booking_type", out.LogFields{
		"bookingType": bookingTypeID,
	})
}

func (c *WeekGridCache) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()

	c.logger.Debug("cache.invalidate.all", out.LogFields{})
}
