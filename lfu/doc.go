/*
Package lfu implements a bounded Least Frequently Used cache where every
operation runs in O(1).

Entries are grouped into buckets by access frequency. Each bucket is a doubly
linked list ordered by recency, so when capacity is exceeded the victim is the
least recently touched entry of the lowest frequency bucket. The lowest
frequency is tracked incrementally and never searched for.

	c, _ := lfu.New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1)    // 1, true
	c.Set(3, 3) // evicts 2
	c.Get(2)    // 0, false

A Cache is not safe for concurrent use. Guard every call with one lock, as
shard.Shard does.
*/
package lfu
