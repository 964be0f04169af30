package cache

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/lfu-cache/api"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/shard"
)

// ErrInvalidShards is returned by NewShardedCache for a shard count below one.
var ErrInvalidShards = errors.New("cache: shard count must be positive")

/*
ShardedCache is the concurrent cache built on the LFU core.
This struct is the orchestrator that connects:
- shards, each an LFU core behind its own lock
- the engine: loading, metrics, logging

Frequencies are counted per shard, so eviction picks the least frequently used
key of the shard that receives the new key.
*/
type ShardedCache struct {
	// shards are the actual storage units. Each shard is an independent LFU cache.
	shards []*shard.Shard

	// engine contains the "rules" of the cache: loader, metrics, logger.
	engine *engine.CacheEngine

	// selector decides which shard a key should go to.
	selector shard.Selector

	// capacity is the maximum number of entries in the cache. This is divided across shards.
	capacity int

	// sf prevents multiple goroutines from loading the same key from the backing store simultaneously.
	sf singleflight.Group
}

var _ api.Cache = (*ShardedCache)(nil)

/*
NewShardedCache creates a cache holding at most capacity keys in total.

capacity is split evenly, and the remainder goes one key each to the first
shards. With fewer keys than shards some shards store nothing.
A nil engine means no loader, no metrics, no logging.
*/
func NewShardedCache(shards, capacity int, eng *engine.CacheEngine) (*ShardedCache, error) {
	if shards <= 0 {
		return nil, errors.Wrapf(ErrInvalidShards, "shards %d", shards)
	}
	if capacity < 0 {
		return nil, errors.Wrapf(lfu.ErrNegativeCapacity, "capacity %d", capacity)
	}
	if eng == nil {
		eng = engine.NewCacheEngine(nil, nil, nil)
	}

	s := make([]*shard.Shard, shards)
	for i := range s {
		sh, err := shard.NewShard(shardCapacity(capacity, shards, i), eng.OnEvict, eng.Logger)
		if err != nil {
			return nil, err
		}
		s[i] = sh
	}

	return &ShardedCache{
		shards:   s,
		engine:   eng,
		selector: shard.HashSelector{},
		capacity: capacity,
	}, nil
}

func shardCapacity(total, shards, i int) int {
	c := total / shards
	if i < total%shards {
		c++
	}
	return c
}

/*
Get retrieves a value from the cache.

BEHAVIOR:
-------------------
 1. Key in memory: the key's frequency is incremented, ok is true.
 2. Key missing, no loader: ok is false, err is nil. A miss is not an error.
 3. Key missing, loader configured: one goroutine loads the key, every waiting
    caller gets its result. A non-nil value is stored with frequency 1
    unless the key became resident during the load, in which case the
    resident value is returned untouched. A nil value is a miss. A loader
    error is returned wrapped.
*/
func (c *ShardedCache) Get(ctx context.Context, key string) (any, bool, error) {
	sh := c.selector.Select(key, c.shards)

	if v, ok := sh.Get(key); ok {
		c.engine.Metrics.Hit()
		return v, true, nil
	}
	c.engine.Metrics.Miss()

	if !c.engine.CanLoad() {
		return nil, false, nil
	}

	// The loaded value is stored inside the flight so concurrent callers
	// count as one insertion. A key that became resident meanwhile, by an
	// earlier flight or a Set, wins over the loaded value.
	v, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := sh.Peek(key); ok {
			return v, nil
		}
		v, err := c.engine.Load(ctx, key)
		if err != nil || v == nil {
			return nil, err
		}
		v, _ = sh.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, v != nil, nil
}

// Set stores a value. Setting an existing key counts as a use of it.
func (c *ShardedCache) Set(key string, value any) {
	c.selector.Select(key, c.shards).Set(key, value)
}

// Remove deletes a key from the cache immediately. The backing store is not touched.
func (c *ShardedCache) Remove(key string) bool {
	return c.selector.Select(key, c.shards).Remove(key)
}

// Frequency returns the use count of a resident key without counting a use.
func (c *ShardedCache) Frequency(key string) (int, bool) {
	return c.selector.Select(key, c.shards).Frequency(key)
}

// Len returns the number of resident keys. Shards are read one after another,
// so the total may be stale under concurrent writes.
func (c *ShardedCache) Len() int {
	n := 0
	for _, sh := range c.shards {
		n += sh.Len()
	}
	return n
}

func (c *ShardedCache) Cap() int { return c.capacity }

// Stats sums the counters of all shards.
func (c *ShardedCache) Stats() lfu.Stats {
	var s lfu.Stats
	for _, sh := range c.shards {
		s = s.Add(sh.Stats())
	}
	return s
}
