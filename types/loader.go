package types

import "context"

// Loader is the contract between the cache and the source of truth behind it.
type Loader interface {

	/*
		Load is called when the cache misses. The key was not found in memory, so the cache asks the Loader to fetch it.
		1. Cache checks memory → key not found
		2. Cache calls Load(key), once per key no matter how many callers are waiting
		3. Loader fetches from DB/API
		4. Cache stores the result with frequency 1
		5. Cache returns the value

		Returning a nil value with a nil error means the key does not exist anywhere;
		nothing is stored and the caller sees a miss.
	*/
	Load(ctx context.Context, key string) (any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (any, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (any, error) { return f(ctx, key) }
