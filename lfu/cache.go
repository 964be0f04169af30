package lfu

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrNegativeCapacity is returned by New for a capacity below zero.
var ErrNegativeCapacity = errors.New("lfu: negative capacity")

/*
Cache is a bounded LFU cache.

It keeps two indices in sync:
  - index maps a key to its node handle
  - buckets maps a frequency to the bucket holding every node at that frequency

minFreq is the lowest frequency among resident nodes and addresses a non-empty
bucket whenever the cache is not empty. The eviction victim is the least
recently touched node of that bucket.
*/
type Cache[K comparable, V any] struct {
	capacity int
	index    map[K]handle
	buckets  map[int]*bucket[K, V]
	nodes    *arena[K, V]
	minFreq  int

	// root is a sentinel with frequency 0. root.higher is the lowest bucket.
	root bucket[K, V]

	onEvict func(K, V)
	log     *zap.Logger
	stats   Stats
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithLogger sets the logger used to report evictions at debug level.
func WithLogger[K comparable, V any](l *zap.Logger) Option[K, V] {
	return func(c *Cache[K, V]) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEvictCallback registers fn to be called with every entry evicted to make
// room for a new key. Explicit Remove calls do not trigger it. fn runs inside
// Set and must not call back into the cache.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) { c.onEvict = fn }
}

// New creates a cache holding at most capacity entries. A zero capacity cache
// stores nothing.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrNegativeCapacity, "capacity %d", capacity)
	}
	nodes := newArena[K, V](capacity)
	c := &Cache[K, V]{
		capacity: capacity,
		index:    make(map[K]handle, min(capacity, maxPrealloc)),
		buckets:  make(map[int]*bucket[K, V]),
		nodes:    nodes,
		root:     bucket[K, V]{head: nilHandle, tail: nilHandle, nodes: nodes},
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Get returns the value for key and counts one use of it. The second result is
// false on a miss, which has no side effects besides the miss counter.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	h, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		return value, false
	}
	c.stats.Hits++
	c.promote(h)
	c.checkInvariants()
	return c.nodes.at(h).value, true
}

/*
Set stores value under key.

BEHAVIOR:
  - capacity 0: nothing is stored
  - key present: the value is replaced and the key's frequency is incremented
    exactly as Get does; it is not reset to 1
  - key absent, cache full: the least recently touched entry of the lowest
    frequency is evicted first
  - key absent: the entry starts at frequency 1, which becomes the minimum
*/
func (c *Cache[K, V]) Set(key K, value V) {
	if c.capacity == 0 {
		return
	}
	if h, ok := c.index[key]; ok {
		c.nodes.at(h).value = value
		c.promote(h)
		c.checkInvariants()
		return
	}
	c.insert(key, value)
	c.checkInvariants()
}

// Add stores value under key only if key is absent and reports whether it did.
// A resident key keeps its value and frequency. Add never stores anything in a
// zero capacity cache.
func (c *Cache[K, V]) Add(key K, value V) bool {
	if c.capacity == 0 {
		return false
	}
	if _, ok := c.index[key]; ok {
		return false
	}
	c.insert(key, value)
	c.checkInvariants()
	return true
}

// insert adds an absent key at frequency 1, evicting first when full.
func (c *Cache[K, V]) insert(key K, value V) {
	if len(c.index) == c.capacity {
		c.evict()
	}
	h := c.nodes.alloc(key, value)
	c.bucketAfter(&c.root, 1).insertMostRecent(h)
	c.minFreq = 1
	c.index[key] = h
	c.stats.Inserts++
}

// Remove deletes key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	h, ok := c.index[key]
	if !ok {
		return false
	}
	b := c.buckets[c.nodes.at(h).freq]
	b.remove(h)
	if b.empty() {
		if b.freq == c.minFreq {
			c.minFreq = 0
			if b.higher != nil {
				c.minFreq = b.higher.freq
			}
		}
		c.dropBucket(b)
	}
	delete(c.index, key)
	c.nodes.release(h)
	c.stats.Removals++
	c.checkInvariants()
	return true
}

/*
MostFrequentlyUsed returns the most recently touched entry among those with the
lowest frequency, that is the entry right next to the eviction victim. Despite
the name it does not return the highest frequency entry. ok is false when the
cache is empty.
*/
func (c *Cache[K, V]) MostFrequentlyUsed() (key K, value V, ok bool) {
	if len(c.index) == 0 {
		return key, value, false
	}
	n := c.nodes.at(c.buckets[c.minFreq].peekMostRecent())
	return n.key, n.value, true
}

// Peek returns the value for key without counting a use.
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	h, ok := c.index[key]
	if !ok {
		return value, false
	}
	return c.nodes.at(h).value, true
}

// Frequency returns how many times key was used since it was inserted,
// counting the insertion.
func (c *Cache[K, V]) Frequency(key K) (int, bool) {
	h, ok := c.index[key]
	if !ok {
		return 0, false
	}
	return c.nodes.at(h).freq, true
}

func (c *Cache[K, V]) Len() int { return len(c.index) }
func (c *Cache[K, V]) Cap() int { return c.capacity }

func (c *Cache[K, V]) Stats() Stats {
	s := c.stats
	s.Items = len(c.index)
	s.Buckets = len(c.buckets)
	return s
}

// promote moves h into the bucket for the next frequency as its most recently
// touched node.
func (c *Cache[K, V]) promote(h handle) {
	n := c.nodes.at(h)
	from := c.buckets[n.freq]
	to := c.bucketAfter(from, n.freq+1)
	from.remove(h)
	if from.empty() {
		if from.freq == c.minFreq {
			c.minFreq++
		}
		c.dropBucket(from)
	}
	n.freq++
	to.insertMostRecent(h)
}

// evict drops the least recently touched node of the minimum frequency bucket.
func (c *Cache[K, V]) evict() {
	b := c.buckets[c.minFreq]
	h := b.removeLeastRecent()
	if b.empty() {
		c.dropBucket(b)
	}
	n := c.nodes.at(h)
	key, value, freq := n.key, n.value, n.freq
	delete(c.index, key)
	c.nodes.release(h)
	c.stats.Evictions++

	if ce := c.log.Check(zapcore.DebugLevel, "Evicted entry."); ce != nil {
		ce.Write(zap.Any("key", key), zap.Int("frequency", freq))
	}
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// bucketAfter returns the bucket for freq, creating it right above lower when
// absent. No bucket can exist strictly between lower.freq and freq.
func (c *Cache[K, V]) bucketAfter(lower *bucket[K, V], freq int) *bucket[K, V] {
	if b, ok := c.buckets[freq]; ok {
		return b
	}
	b := newBucket(freq, c.nodes)
	b.lower, b.higher = lower, lower.higher
	if lower.higher != nil {
		lower.higher.lower = b
	}
	lower.higher = b
	c.buckets[freq] = b
	return b
}

func (c *Cache[K, V]) dropBucket(b *bucket[K, V]) {
	b.lower.higher = b.higher
	if b.higher != nil {
		b.higher.lower = b.lower
	}
	b.lower, b.higher = nil, nil
	delete(c.buckets, b.freq)
}
