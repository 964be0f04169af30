package shard

import (
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"github.com/krisalay/lfu-cache/lfu"
)

/*
This file defines what a "Shard" is. A shard is a small, independent piece of the cache.
Instead of having: One big cache and one big lock
We split the cache into many shards. Each shard:
- Holds some portion of the keys
- Runs its own LFU core with its own share of the capacity
- Has its own lock

The LFU core keeps its index, buckets and minimum frequency in sync inside
every call, so each call runs entirely under the shard lock. Even Get takes
the exclusive lock: a read moves the entry to another bucket.
*/
type Shard struct {
	mu    deadlock.Mutex
	cache *lfu.Cache[string, any]
}

// NewShard creates a shard holding at most capacity keys. onEvict may be nil
// and runs under the shard lock.
func NewShard(capacity int, onEvict func(key string, value any), logger *zap.Logger) (*Shard, error) {
	opts := []lfu.Option[string, any]{lfu.WithLogger[string, any](logger)}
	if onEvict != nil {
		opts = append(opts, lfu.WithEvictCallback(onEvict))
	}
	c, err := lfu.New[string, any](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Shard{cache: c}, nil
}

func (s *Shard) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

func (s *Shard) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(key, value)
}

// Peek returns the value for key without counting a use.
func (s *Shard) Peek(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Peek(key)
}

// Add stores value only if key is absent. A resident key is left untouched and
// its value is returned with false.
func (s *Shard) Add(key string, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.Peek(key); ok {
		return v, false
	}
	return value, s.cache.Add(key, value)
}

func (s *Shard) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

func (s *Shard) MostFrequentlyUsed() (string, any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.MostFrequentlyUsed()
}

func (s *Shard) Frequency(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Frequency(key)
}

func (s *Shard) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

func (s *Shard) Cap() int {
	// Capacity is fixed at construction.
	return s.cache.Cap()
}

func (s *Shard) Stats() lfu.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}
