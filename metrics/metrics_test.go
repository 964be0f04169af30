package metrics

import (
	"bytes"
	"testing"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(nil)

	m.Hit()
	m.Hit()
	m.Hit()
	m.Miss()
	m.Eviction()
	m.LoadError()

	assert.Equal(t, Snapshot{Hits: 3, Misses: 1, Evictions: 1, LoadErrors: 1}, m.Snapshot())
	assert.InDelta(t, 0.75, m.Snapshot().HitRatio(), 1e-9)
}

func TestHitRatioWithoutLookups(t *testing.T) {
	assert.Zero(t, Snapshot{}.HitRatio())
}

func TestSharedRegistry(t *testing.T) {
	r := gometrics.NewRegistry()
	a := New(r)
	b := New(r)

	a.Hit()
	b.Hit()

	c, ok := r.Get(HitName).(gometrics.Counter)
	require.True(t, ok)
	assert.Equal(t, int64(2), c.Count())
	assert.Same(t, r, a.Registry())
}

func TestWriteOnce(t *testing.T) {
	m := New(nil)
	m.Eviction()

	var buf bytes.Buffer
	m.WriteOnce(&buf)

	assert.Contains(t, buf.String(), EvictionName)
}
