package shard

import "github.com/cespare/xxhash/v2"

/*
This file decides HOW a cache key is assigned to a shard.
If every request went to the same shard, that shard would become a bottleneck.
Shard selection is about:
- Load balancing
- Avoiding hot spots
- Scaling under concurrency

A key must always map to the same shard, otherwise its frequency would be
split between shards.
*/

/*
Selector is the interface that decides which shard should handle a given key.
The cache does not care HOW this decision is made. Different strategies can be plugged in.
*/
type Selector interface {
	Select(string, []*Shard) *Shard
}

// HashSelector spreads keys by their xxhash digest.
type HashSelector struct{}

// Select chooses the shard for a given key. shards must not be empty.
func (HashSelector) Select(key string, shards []*Shard) *Shard {
	return shards[Index(key, len(shards))]
}

// Index returns the shard number of key among n shards.
func Index(key string, n int) int {
	return int(xxhash.Sum64String(key) % uint64(n))
}
