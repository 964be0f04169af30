package engine

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krisalay/lfu-cache/types"
)

/*
CacheEngine holds the "rules" around the cache, NOT the storage.

It decides:
- How data is loaded on cache miss
- How hits, misses, evictions and load failures are recorded
- Where the cache logs

It does NOT:
- Store data
- Handle sharding
- Handle locking
- Decide eviction order (that is the LFU core in package lfu)
*/
type CacheEngine struct {

	// Loader is how the cache talks to the outside world when it does NOT have the data.
	// This enables read-through caching. If nil, a miss is returned as is.
	Loader types.Loader

	// Metrics is how we keep track of what the cache is doing. Never nil.
	Metrics types.Metrics

	// Logger is never nil.
	Logger *zap.Logger
}

// NewCacheEngine creates a CacheEngine. Nil metrics and logger are replaced by no-op ones.
func NewCacheEngine(loader types.Loader, metrics types.Metrics, logger *zap.Logger) *CacheEngine {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheEngine{
		Loader:  loader,
		Metrics: metrics,
		Logger:  logger,
	}
}

// CanLoad reports whether misses can be served from a Loader.
func (e *CacheEngine) CanLoad() bool { return e.Loader != nil }

/*
Load is used when the cache does NOT have the data.

Loader errors are counted, logged and returned wrapped with the key.
*/
func (e *CacheEngine) Load(ctx context.Context, key string) (any, error) {
	v, err := e.Loader.Load(ctx, key)
	if err != nil {
		e.Metrics.LoadError()
		e.Logger.Warn("Load failed.", zap.String("key", key), zap.Error(err))
		return nil, errors.Wrapf(err, "load %q", key)
	}
	return v, nil
}

// OnEvict is installed as the eviction callback of every shard.
func (e *CacheEngine) OnEvict(key string, _ any) {
	e.Metrics.Eviction()
	e.Logger.Debug("Evicted.", zap.String("key", key))
}
