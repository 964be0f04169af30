package lfu

// Stats holds current item counts and operation counters.
type Stats struct {
	Items     int // Number of entries currently in the cache
	Buckets   int // Number of distinct frequencies currently held
	Inserts   int // Number of Set calls that added a new key
	Hits      int // Number of Get calls that found the key
	Misses    int // Number of Get calls for an absent key
	Evictions int // Number of entries dropped to make room on Set
	Removals  int // Number of entries dropped by Remove
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Items:     s.Items + o.Items,
		Buckets:   s.Buckets + o.Buckets,
		Inserts:   s.Inserts + o.Inserts,
		Hits:      s.Hits + o.Hits,
		Misses:    s.Misses + o.Misses,
		Evictions: s.Evictions + o.Evictions,
		Removals:  s.Removals + o.Removals,
	}
}
