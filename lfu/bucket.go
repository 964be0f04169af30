package lfu

import "github.com/krisalay/lfu-cache/internal/tag"

/*
bucket holds every resident node that has the same frequency.

Nodes are ordered by recency of last touch:

	head (most recently touched) <-> ... <-> tail (least recently touched)

Buckets are also chained in ascending frequency order through lower and
higher. The chain starts at the cache's sentinel bucket (frequency 0), so
lower is never nil for a live bucket.

Only Cache mutates buckets. It always passes member handles to remove, and
checks size before removeLeastRecent and peekMostRecent.
*/
type bucket[K comparable, V any] struct {
	freq int
	size int
	head handle
	tail handle

	lower  *bucket[K, V]
	higher *bucket[K, V]

	nodes *arena[K, V]
}

func newBucket[K comparable, V any](freq int, nodes *arena[K, V]) *bucket[K, V] {
	return &bucket[K, V]{freq: freq, head: nilHandle, tail: nilHandle, nodes: nodes}
}

// insertMostRecent links h at the head. h must not be a member of any bucket.
func (b *bucket[K, V]) insertMostRecent(h handle) {
	n := b.nodes.at(h)
	n.prev = nilHandle
	n.next = b.head
	if b.head != nilHandle {
		b.nodes.at(b.head).prev = h
	} else {
		b.tail = h
	}
	b.head = h
	b.size++
}

// remove unlinks member h.
func (b *bucket[K, V]) remove(h handle) {
	n := b.nodes.at(h)
	if n.prev != nilHandle {
		b.nodes.at(n.prev).next = n.next
	} else {
		b.head = n.next
	}
	if n.next != nilHandle {
		b.nodes.at(n.next).prev = n.prev
	} else {
		b.tail = n.prev
	}
	if tag.Debug {
		n.prev, n.next = nilHandle, nilHandle
	}
	b.size--
}

func (b *bucket[K, V]) removeLeastRecent() handle {
	if b.tail == nilHandle {
		panic("lfu: remove least recent from empty bucket")
	}
	h := b.tail
	b.remove(h)
	return h
}

func (b *bucket[K, V]) peekMostRecent() handle {
	if b.head == nilHandle {
		panic("lfu: peek most recent in empty bucket")
	}
	return b.head
}

func (b *bucket[K, V]) empty() bool { return b.size == 0 }
