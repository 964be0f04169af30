package lfu

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

// model is a naive LFU that scans all entries to pick victims.
type model struct {
	capacity int
	clock    int
	entries  map[int]*modelEntry
}

type modelEntry struct {
	value   int
	freq    int
	touched int
}

func newModel(capacity int) *model {
	return &model{capacity: capacity, entries: make(map[int]*modelEntry)}
}

func (m *model) touch(e *modelEntry) {
	m.clock++
	e.freq++
	e.touched = m.clock
}

func (m *model) get(k int) (int, bool) {
	e, ok := m.entries[k]
	if !ok {
		return 0, false
	}
	m.touch(e)
	return e.value, true
}

func (m *model) set(k, v int) (evicted int, didEvict bool) {
	if m.capacity == 0 {
		return 0, false
	}
	if e, ok := m.entries[k]; ok {
		e.value = v
		m.touch(e)
		return 0, false
	}
	if len(m.entries) == m.capacity {
		evicted = m.pick(func(a, b *modelEntry) bool { return a.touched < b.touched })
		delete(m.entries, evicted)
		didEvict = true
	}
	m.clock++
	m.entries[k] = &modelEntry{value: v, freq: 1, touched: m.clock}
	return evicted, didEvict
}

// pick returns the lowest frequency key, breaking ties with first.
func (m *model) pick(first func(a, b *modelEntry) bool) int {
	var best *modelEntry
	var key int
	for k, e := range m.entries {
		if best == nil || e.freq < best.freq || (e.freq == best.freq && first(e, best)) {
			best, key = e, k
		}
	}
	return key
}

func (m *model) remove(k int) bool {
	if _, ok := m.entries[k]; !ok {
		return false
	}
	delete(m.entries, k)
	return true
}

func (m *model) add(k, v int) (evicted int, didEvict, added bool) {
	if _, ok := m.entries[k]; ok || m.capacity == 0 {
		return 0, false, false
	}
	evicted, didEvict = m.set(k, v)
	return evicted, didEvict, true
}

func (m *model) mostFrequentlyUsed() (int, bool) {
	if len(m.entries) == 0 {
		return 0, false
	}
	return m.pick(func(a, b *modelEntry) bool { return a.touched > b.touched }), true
}

type op struct {
	Kind  uint8
	Key   uint8
	Value int
}

func TestMatchesNaiveModel(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		f := fuzz.NewWithSeed(seed).NilChance(0).NumElements(100, 400)
		var capacity uint8
		var ops []op
		f.Fuzz(&capacity)
		f.Fuzz(&ops)
		runModelCheck(t, int(capacity%6), ops)
	}
}

func runModelCheck(t *testing.T, capacity int, ops []op) {
	m := newModel(capacity)
	var evicted []int
	c, err := New[int, int](capacity, WithEvictCallback(func(k, _ int) { evicted = append(evicted, k) }))
	require.NoError(t, err)

	for i, o := range ops {
		k := int(o.Key % 10)
		switch o.Kind % 6 {
		case 0, 1:
			want, wantOK := m.get(k)
			got, gotOK := c.Get(k)
			require.Equal(t, wantOK, gotOK, "op %d get(%d)", i, k)
			require.Equal(t, want, got, "op %d get(%d)", i, k)
		case 2:
			evicted = evicted[:0]
			victim, didEvict := m.set(k, o.Value)
			c.Set(k, o.Value)
			if didEvict {
				require.Equal(t, []int{victim}, evicted, "op %d set(%d)", i, k)
			} else {
				require.Empty(t, evicted, "op %d set(%d)", i, k)
			}
		case 3:
			wantKey, wantOK := m.mostFrequentlyUsed()
			gotKey, _, gotOK := c.MostFrequentlyUsed()
			require.Equal(t, wantOK, gotOK, "op %d most frequently used", i)
			require.Equal(t, wantKey, gotKey, "op %d most frequently used", i)
		case 4:
			evicted = evicted[:0]
			require.Equal(t, m.remove(k), c.Remove(k), "op %d remove(%d)", i, k)
			require.Empty(t, evicted, "op %d remove(%d)", i, k)
		case 5:
			evicted = evicted[:0]
			victim, didEvict, added := m.add(k, o.Value)
			require.Equal(t, added, c.Add(k, o.Value), "op %d add(%d)", i, k)
			if didEvict {
				require.Equal(t, []int{victim}, evicted, "op %d add(%d)", i, k)
			} else {
				require.Empty(t, evicted, "op %d add(%d)", i, k)
			}
		}

		require.NoError(t, c.verify(), "op %d", i)
		require.Equal(t, len(m.entries), c.Len(), "op %d", i)
		for mk, e := range m.entries {
			f, ok := c.Frequency(mk)
			require.True(t, ok, "op %d key %d", i, mk)
			require.Equal(t, e.freq, f, "op %d key %d", i, mk)
		}
	}
}
