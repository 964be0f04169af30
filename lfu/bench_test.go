package lfu

import (
	"math/rand"
	"testing"
)

func BenchmarkGetHit(b *testing.B) {
	c, _ := New[int, int](1024)
	for i := 0; i < 1024; i++ {
		c.Set(i, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i & 1023)
	}
}

func BenchmarkSetEvict(b *testing.B) {
	c, _ := New[int, int](1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(i, i)
	}
}

func BenchmarkZipfMix(b *testing.B) {
	c, _ := New[uint64, uint64](4096)
	z := rand.NewZipf(rand.New(rand.NewSource(1)), 1.1, 1, 1<<16)
	keys := make([]uint64, 1<<16)
	for i := range keys {
		keys[i] = z.Uint64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i&(len(keys)-1)]
		if _, ok := c.Get(k); !ok {
			c.Set(k, k)
		}
	}
}
