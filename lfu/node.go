package lfu

// handle addresses a node inside the arena.
type handle int

// nilHandle terminates bucket lists.
const nilHandle handle = -1

// maxPrealloc bounds the arena slice allocated up front for large capacities.
const maxPrealloc = 1 << 10

// node is one cache entry. prev points towards the most recently touched end of
// its bucket, next towards the least recently touched end.
type node[K comparable, V any] struct {
	key   K
	value V
	freq  int
	prev  handle
	next  handle
}

// arena owns every node. Slots of evicted and removed nodes go to the free list
// and are reused, so the arena never holds more than capacity slots.
type arena[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
}

func newArena[K comparable, V any](capacity int) *arena[K, V] {
	return &arena[K, V]{nodes: make([]node[K, V], 0, min(capacity, maxPrealloc))}
}

// alloc stores a fresh node with frequency 1. Pointers returned by at are
// invalid after alloc.
func (a *arena[K, V]) alloc(key K, value V) handle {
	n := node[K, V]{key: key, value: value, freq: 1, prev: nilHandle, next: nilHandle}
	if last := len(a.free) - 1; last >= 0 {
		h := a.free[last]
		a.free = a.free[:last]
		a.nodes[h] = n
		return h
	}
	a.nodes = append(a.nodes, n)
	return handle(len(a.nodes) - 1)
}

// release zeroes the slot so the key and value can be collected.
func (a *arena[K, V]) release(h handle) {
	a.nodes[h] = node[K, V]{prev: nilHandle, next: nilHandle}
	a.free = append(a.free, h)
}

func (a *arena[K, V]) at(h handle) *node[K, V] { return &a.nodes[h] }

func (a *arena[K, V]) live() int { return len(a.nodes) - len(a.free) }
