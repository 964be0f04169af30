// Package metrics implements types.Metrics on top of go-metrics counters.
package metrics

import (
	"io"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/krisalay/lfu-cache/types"
)

// Counter names in the registry.
const (
	HitName       = "cache.hit"
	MissName      = "cache.miss"
	EvictionName  = "cache.eviction"
	LoadErrorName = "cache.load.error"
)

// Registry counts cache events in a go-metrics registry. Safe for concurrent use.
type Registry struct {
	registry   gometrics.Registry
	hits       gometrics.Counter
	misses     gometrics.Counter
	evictions  gometrics.Counter
	loadErrors gometrics.Counter
}

var _ types.Metrics = (*Registry)(nil)

// New registers the cache counters in r. A nil r gets a fresh registry.
func New(r gometrics.Registry) *Registry {
	if r == nil {
		r = gometrics.NewRegistry()
	}
	return &Registry{
		registry:   r,
		hits:       gometrics.GetOrRegisterCounter(HitName, r),
		misses:     gometrics.GetOrRegisterCounter(MissName, r),
		evictions:  gometrics.GetOrRegisterCounter(EvictionName, r),
		loadErrors: gometrics.GetOrRegisterCounter(LoadErrorName, r),
	}
}

func (m *Registry) Hit()       { m.hits.Inc(1) }
func (m *Registry) Miss()      { m.misses.Inc(1) }
func (m *Registry) Eviction()  { m.evictions.Inc(1) }
func (m *Registry) LoadError() { m.loadErrors.Inc(1) }

// Registry returns the underlying registry, for attaching reporters.
func (m *Registry) Registry() gometrics.Registry { return m.registry }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	LoadErrors int64
}

func (m *Registry) Snapshot() Snapshot {
	return Snapshot{
		Hits:       m.hits.Count(),
		Misses:     m.misses.Count(),
		Evictions:  m.evictions.Count(),
		LoadErrors: m.loadErrors.Count(),
	}
}

// HitRatio is hits over lookups, or 0 before the first lookup.
func (s Snapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// WriteOnce dumps every metric of the registry to w.
func (m *Registry) WriteOnce(w io.Writer) {
	gometrics.WriteOnce(m.registry, w)
}
