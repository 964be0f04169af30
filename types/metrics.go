package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
Methods may be called from many goroutines at once.
*/
type Metrics interface {

	// Hit is called when the cache finds the key in memory.
	Hit()

	// Miss is called when the key is not in memory, whether or not a Loader is configured.
	Miss()

	// Eviction is called when the least frequently used key is removed because a shard is full.
	Eviction()

	// LoadError is called when the Loader fails.
	LoadError()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

It lets callers who do not care about metrics skip them
without nil checks on every cache operation.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()       {}
func (NoopMetrics) Miss()      {}
func (NoopMetrics) Eviction()  {}
func (NoopMetrics) LoadError() {}
