package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/metrics"
)

// ================= BENCHMARK =================

func main() {
	app := &cli.App{
		Name:  "lfu-benchmark",
		Usage: "concurrent Zipf load against the sharded LFU cache",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "shards", Value: 8, Usage: "shard count"},
			&cli.IntFlag{Name: "capacity", Value: 10000, Usage: "total cached keys"},
			&cli.IntFlag{Name: "keys", Value: 100000, Usage: "size of the key space"},
			&cli.Float64Flag{Name: "skew", Value: 1.1, Usage: "Zipf s parameter, must be > 1"},
			&cli.IntFlag{Name: "goroutines", Value: 200, Usage: "concurrent workers"},
			&cli.IntFlag{Name: "ops", Value: 5000, Usage: "operations per worker"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	var (
		shards     = c.Int("shards")
		capacity   = c.Int("capacity")
		keySpace   = c.Int("keys")
		skew       = c.Float64("skew")
		goroutines = c.Int("goroutines")
		opsPerG    = c.Int("ops")
		seed       = c.Int64("seed")
	)
	if keySpace < 1 || skew <= 1 {
		return errors.New("keys must be positive and skew above 1")
	}

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards       :", shards)
	fmt.Println("Capacity     :", capacity)
	fmt.Println("Key Space    :", keySpace)
	fmt.Println("Zipf Skew    :", skew)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Cache Engine ----------------
	m := metrics.New(nil)
	eng := engine.NewCacheEngine(nil, m, nil)

	cc, err := cache.NewShardedCache(shards, capacity, eng)
	if err != nil {
		return err
	}

	keys := make([]string, keySpace)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	// ---------------- Load Test ----------------
	fmt.Println("Running concurrency benchmark...")

	ctx := context.Background()
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			// rand.Rand is not safe for concurrent use.
			r := rand.New(rand.NewSource(seed + int64(id)))
			z := rand.NewZipf(r, skew, 1, uint64(keySpace-1))
			for j := 0; j < opsPerG; j++ {
				key := keys[z.Uint64()]
				if _, ok, _ := cc.Get(ctx, key); !ok {
					cc.Set(key, j)
				}
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG
	snap := m.Snapshot()
	stats := cc.Stats()

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Hit Ratio        : %.4f\n", snap.HitRatio())
	fmt.Printf("Evictions        : %d\n", stats.Evictions)
	fmt.Printf("Resident Keys    : %d\n", cc.Len())
	fmt.Println("=========================================")

	fmt.Println("\n================ METRICS =================")
	m.WriteOnce(os.Stdout)
	return nil
}
