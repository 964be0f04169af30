package lfu

import "github.com/pkg/errors"

// Invariants checked by verify:
//   - len(index) <= capacity, and the arena holds exactly len(index) live nodes.
//   - the bucket chain from root is strictly ascending by frequency, every bucket
//     on it is non-empty, registered in buckets, and has a correct lower pointer.
//   - every bucket list is a correct doubly linked list whose size matches, and
//     each member has the bucket's frequency and is the node index points to.
//   - the union of bucket members is exactly the set of indexed nodes.
//   - minFreq is the frequency of the lowest bucket, or 0 for an empty cache.
func (c *Cache[K, V]) verify() error {
	if len(c.index) > c.capacity {
		return errors.Errorf("size %d over capacity %d", len(c.index), c.capacity)
	}
	if live := c.nodes.live(); live != len(c.index) {
		return errors.Errorf("arena holds %d nodes, index %d", live, len(c.index))
	}
	var buckets, members int
	prev := &c.root
	for b := c.root.higher; b != nil; prev, b = b, b.higher {
		buckets++
		if b.freq <= prev.freq {
			return errors.Errorf("bucket %d chained after bucket %d", b.freq, prev.freq)
		}
		if b.lower != prev {
			return errors.Errorf("bucket %d has wrong lower pointer", b.freq)
		}
		if c.buckets[b.freq] != b {
			return errors.Errorf("bucket %d not registered", b.freq)
		}
		if b.empty() {
			return errors.Errorf("empty bucket %d not pruned", b.freq)
		}
		n, err := c.verifyBucket(b)
		if err != nil {
			return err
		}
		members += n
	}
	if buckets != len(c.buckets) {
		return errors.Errorf("%d buckets chained, %d registered", buckets, len(c.buckets))
	}
	if members != len(c.index) {
		return errors.Errorf("%d nodes in buckets, %d indexed", members, len(c.index))
	}
	switch {
	case c.root.higher == nil && c.minFreq != 0:
		return errors.Errorf("empty cache with min frequency %d", c.minFreq)
	case c.root.higher != nil && c.root.higher.freq != c.minFreq:
		return errors.Errorf("min frequency %d, lowest bucket %d", c.minFreq, c.root.higher.freq)
	}
	return nil
}

func (c *Cache[K, V]) verifyBucket(b *bucket[K, V]) (int, error) {
	count := 0
	prev := nilHandle
	for h := b.head; h != nilHandle; h = c.nodes.at(h).next {
		n := c.nodes.at(h)
		if n.prev != prev {
			return 0, errors.Errorf("bucket %d: node %v has wrong prev", b.freq, n.key)
		}
		if n.freq != b.freq {
			return 0, errors.Errorf("bucket %d: node %v has frequency %d", b.freq, n.key, n.freq)
		}
		if ih, ok := c.index[n.key]; !ok || ih != h {
			return 0, errors.Errorf("bucket %d: node %v not indexed", b.freq, n.key)
		}
		if n.next == nilHandle && b.tail != h {
			return 0, errors.Errorf("bucket %d: tail does not point to last node", b.freq)
		}
		prev = h
		count++
		if count > b.size {
			return 0, errors.Errorf("bucket %d: more nodes than size %d", b.freq, b.size)
		}
	}
	if count != b.size {
		return 0, errors.Errorf("bucket %d: %d nodes, size %d", b.freq, count, b.size)
	}
	return count, nil
}
