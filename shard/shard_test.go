package shard

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestShard(t *testing.T, capacity int, onEvict func(string, any)) *Shard {
	t.Helper()
	s, err := NewShard(capacity, onEvict, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestShardLFU(t *testing.T) {
	var evicted []string
	s := newTestShard(t, 2, func(k string, _ any) { evicted = append(evicted, k) })

	s.Set("a", 1)
	s.Set("b", 2)
	_, ok := s.Get("a")
	require.True(t, ok)
	s.Set("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Cap())

	f, ok := s.Frequency("a")
	assert.True(t, ok)
	assert.Equal(t, 2, f)

	k, v, ok := s.MostFrequentlyUsed()
	assert.True(t, ok)
	assert.Equal(t, "c", k)
	assert.Equal(t, 3, v)

	assert.True(t, s.Remove("c"))
	assert.Equal(t, 1, s.Stats().Removals)
}

func TestShardAdd(t *testing.T) {
	s := newTestShard(t, 2, nil)

	v, added := s.Add("a", 1)
	assert.True(t, added)
	assert.Equal(t, 1, v)

	s.Get("a")
	v, added = s.Add("a", 2)
	assert.False(t, added)
	assert.Equal(t, 1, v)

	f, _ := s.Frequency("a")
	assert.Equal(t, 2, f)

	v, ok := s.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	f, _ = s.Frequency("a")
	assert.Equal(t, 2, f, "peek does not count a use")
}

func TestShardNilCallback(t *testing.T) {
	s := newTestShard(t, 1, nil)

	s.Set("a", 1)
	s.Set("b", 2)

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Stats().Evictions)
}

func TestNewShardNegativeCapacity(t *testing.T) {
	_, err := NewShard(-1, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestShardConcurrentAccess(t *testing.T) {
	s := newTestShard(t, 16, nil)

	wg := sync.WaitGroup{}
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := fmt.Sprintf("k%d", (i+g)%40)
				s.Set(k, i)
				s.Get(k)
				if i%7 == 0 {
					s.Remove(k)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 16)
}

func TestIndexIsStableAndInRange(t *testing.T) {
	for n := 1; n <= 16; n++ {
		for i := 0; i < 100; i++ {
			key := fmt.Sprintf("key-%d", i)
			idx := Index(key, n)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
			assert.Equal(t, idx, Index(key, n))
		}
	}
}

func TestHashSelectorSpreadsKeys(t *testing.T) {
	shards := make([]*Shard, 4)
	for i := range shards {
		shards[i] = newTestShard(t, 1, nil)
	}

	seen := map[*Shard]int{}
	for i := 0; i < 1000; i++ {
		seen[HashSelector{}.Select(fmt.Sprintf("key-%d", i), shards)]++
	}

	assert.Len(t, seen, 4)
	for _, n := range seen {
		assert.Greater(t, n, 100)
	}
}
