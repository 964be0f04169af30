package api

import "context"

/*
Cache defines the PUBLIC API of our in-memory LFU cache system.
This is a contract that guarantees certain behaviors, without exposing internals.
Sharding, locking, frequency buckets and data loading are hidden behind this interface.
*/
type Cache interface {

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		-------------------
		1. If the key exists in cache:
		   - Its use count goes up by one
		   - Return the value immediately (cache hit)

		2. If the key does NOT exist:
		   - Load the value from a backing store if one is configured
		   - Store it in cache with a use count of one
		   - Return the value, or ok == false if nothing was found

		err is only set when the backing store fails. A miss is not an error.
	*/
	Get(ctx context.Context, key string) (value any, ok bool, err error)

	/*
		Set stores a key-value pair in the cache.

		BEHAVIOR:
		---------
		- An existing key gets the new value and its use count goes up by one
		- A new key starts with a use count of one
		- If the cache is full, the key with the lowest use count is evicted first;
		  among equal counts, the one touched longest ago goes
	*/
	Set(key string, value any)

	/*
		Remove deletes a key from the cache immediately.

		Returns false if the key was not cached. Removing a missing key is safe.
	*/
	Remove(key string) bool

	// Len returns how many keys are cached.
	Len() int
}
