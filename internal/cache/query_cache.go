package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
)

// EntityType identifies one cached entity family. Invalidation is coarse:
// any mutation or change notification for the family orphans every key
// belonging to it.
type EntityType string

const (
	EntityFarmers           EntityType = "farmers"
	EntityLivestock         EntityType = "livestock"
	EntityCrops             EntityType = "crops"
	EntityFinancialServices EntityType = "financial_services"
	EntityExtensionServices EntityType = "extension_services"
	EntityOrganizations     EntityType = "organizations"
)

// EntityForTable maps a store table name to its cached entity family
func EntityForTable(table string) (EntityType, bool) {
	switch table {
	case "farmers":
		return EntityFarmers, true
	case "livestock":
		return EntityLivestock, true
	case "crops":
		return EntityCrops, true
	case "financial_services":
		return EntityFinancialServices, true
	case "extension_services":
		return EntityExtensionServices, true
	case "organizations":
		return EntityOrganizations, true
	}
	return "", false
}

// Loader fetches a fresh value for a cache key
type Loader func(ctx context.Context) (interface{}, error)

// Config holds query cache tuning knobs
type Config struct {
	// TTL is the hard lifetime of an entry
	TTL time.Duration
	// StaleAfter is the age past which a hit still serves the cached value
	// but triggers a background revalidation
	StaleAfter time.Duration
	// CleanupInterval controls go-cache janitor frequency
	CleanupInterval time.Duration
}

// DefaultConfig returns the default cache tuning
func DefaultConfig() Config {
	return Config{
		TTL:             5 * time.Minute,
		StaleAfter:      30 * time.Second,
		CleanupInterval: 10 * time.Minute,
	}
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
}

type flight struct {
	done  chan struct{}
	value interface{}
	err   error
}

// QueryCache is a read-through cache keyed by (entity type, serialized query
// parameters). Entries are invalidated as a family via per-type generation
// counters: bumping the generation orphans every live key of that type, and
// orphaned entries age out through the TTL. Invalidation is at least once; a
// burst of mutations may cost extra refetches but never a skipped one.
type QueryCache struct {
	store *gocache.Cache
	cfg   Config
	log   *logger.Logger

	mu       sync.Mutex
	inflight map[string]*flight

	generations map[EntityType]*uint64
}

// New creates a QueryCache
func New(cfg Config, log *logger.Logger) *QueryCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultConfig().StaleAfter
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}
	gens := make(map[EntityType]*uint64)
	for _, e := range []EntityType{
		EntityFarmers, EntityLivestock, EntityCrops,
		EntityFinancialServices, EntityExtensionServices, EntityOrganizations,
	} {
		gens[e] = new(uint64)
	}
	return &QueryCache{
		store:       gocache.New(cfg.TTL, cfg.CleanupInterval),
		cfg:         cfg,
		log:         log,
		inflight:    make(map[string]*flight),
		generations: gens,
	}
}

// Key builds the cache key for an entity type and query parameters. The
// generation is folded into the key so invalidation never races a concurrent
// write of a stale value under the same name.
func (c *QueryCache) Key(entity EntityType, params interface{}) string {
	gen := atomic.LoadUint64(c.generations[entity])
	raw, err := json.Marshal(params)
	if err != nil {
		// params are plain structs; treat a marshal failure as an uncacheable key
		return fmt.Sprintf("%s:%d:!%p", entity, gen, params)
	}
	return fmt.Sprintf("%s:%d:%s", entity, gen, raw)
}

// Get returns the cached value for (entity, params), loading it through
// loader on a miss. Concurrent misses for the same key share one flight.
// A hit older than StaleAfter is served immediately and revalidated in the
// background.
func (c *QueryCache) Get(ctx context.Context, entity EntityType, params interface{}, loader Loader) (interface{}, error) {
	key := c.Key(entity, params)

	if v, ok := c.store.Get(key); ok {
		e := v.(entry)
		if time.Since(e.fetchedAt) > c.cfg.StaleAfter {
			c.revalidate(entity, key, loader)
		}
		return e.value, nil
	}

	return c.load(ctx, key, loader)
}

// load fetches through the loader, coalescing concurrent callers per key
func (c *QueryCache) load(ctx context.Context, key string, loader Loader) (interface{}, error) {
	c.mu.Lock()
	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.value, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	f.value, f.err = loader(ctx)
	if f.err == nil {
		c.store.Set(key, entry{value: f.value, fetchedAt: time.Now()}, c.cfg.TTL)
	}

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(f.done)

	return f.value, f.err
}

// revalidate refreshes a stale entry off the request path. Failures keep the
// stale value in place; the next miss or TTL expiry retries.
func (c *QueryCache) revalidate(entity EntityType, key string, loader Loader) {
	c.mu.Lock()
	if _, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		f.value, f.err = loader(ctx)
		if f.err == nil {
			c.store.Set(key, entry{value: f.value, fetchedAt: time.Now()}, c.cfg.TTL)
		} else if c.log != nil {
			c.log.Warn("background revalidation failed",
				zap.String("entity", string(entity)),
				zap.Error(f.err))
		}

		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		close(f.done)
	}()
}

// Invalidate orphans every cached key for the entity type. The next read of
// any key for this type misses and refetches.
func (c *QueryCache) Invalidate(entity EntityType) {
	atomic.AddUint64(c.generations[entity], 1)
}

// Flush drops everything, generations included. Test helper.
func (c *QueryCache) Flush() {
	c.store.Flush()
	for _, g := range c.generations {
		atomic.AddUint64(g, 1)
	}
}
