package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/config"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/internal/logging"
	"github.com/krisalay/lfu-cache/lfu"
	"github.com/krisalay/lfu-cache/metrics"
)

// ================= BACKING STORE =================
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]any)}
}

func (s *InMemoryStore) Load(ctx context.Context, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fmt.Println("STORE  → load:", key)
	return s.data[key], nil
}

func (s *InMemoryStore) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// ================= MAIN =================

func main() {
	app := &cli.App{
		Name:  "lfu-cache",
		Usage: "replays the LFU reference trace and demos the sharded read-through cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (yaml, json or toml)",
			},
			&cli.IntFlag{
				Name:  "capacity",
				Usage: "total keys of the sharded demo cache, overrides the config",
			},
			&cli.IntFlag{
				Name:  "shards",
				Usage: "shard count of the sharded demo cache, overrides the config",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error, overrides the config",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("capacity") {
		cfg.Capacity = c.Int("capacity")
	}
	if c.IsSet("shards") {
		cfg.Shards = c.Int("shards")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := replayTrace(logger); err != nil {
		return err
	}
	return readThroughDemo(c.Context, cfg, logger)
}

// ================= REFERENCE TRACE =================

func replayTrace(logger *zap.Logger) error {
	fmt.Println("\n==================== REFERENCE TRACE (capacity 2) ====================")

	c, err := lfu.New[int, int](2,
		lfu.WithLogger[int, int](logger),
		lfu.WithEvictCallback(func(k, v int) {
			fmt.Printf("CACHE  → evicted %d (value %d)\n", k, v)
		}),
	)
	if err != nil {
		return err
	}

	set := func(k, v int) {
		fmt.Printf("SET %d = %d\n", k, v)
		c.Set(k, v)
	}
	get := func(k int) {
		if v, ok := c.Get(k); ok {
			fmt.Printf("GET %d = %d\n", k, v)
			return
		}
		fmt.Printf("GET %d = miss\n", k)
	}

	set(1, 1)
	set(2, 2)
	get(1)
	set(3, 3)
	get(2)
	get(3)
	set(4, 4)
	get(1)
	get(3)
	get(4)
	for k := 5; k <= 9; k++ {
		set(k, k)
		get(k - 2)
		get(k - 1)
		get(k)
	}
	set(10, 10)
	get(8)
	set(9, 11)

	k, v, _ := c.MostFrequentlyUsed()
	fmt.Printf("MFU    → %d = %d\n", k, v)

	s := c.Stats()
	fmt.Printf("STATS  → items %d, hits %d, misses %d, evictions %d\n", s.Items, s.Hits, s.Misses, s.Evictions)
	return nil
}

// ================= READ-THROUGH DEMO =================

func readThroughDemo(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	fmt.Println("\n==================== SYSTEM BOOT ====================")
	fmt.Println("EVICTION POLICY : LFU")
	fmt.Println("SHARDS          :", cfg.Shards)
	fmt.Println("CAPACITY        :", cfg.Capacity, "keys")

	// ---------------- Backing Store ----------------
	store := NewInMemoryStore()
	store.Put("a", "alpha")
	store.Put("b", "beta")

	// ---------------- Metrics ----------------
	m := metrics.New(nil)

	// ---------------- Cache Engine ----------------
	eng := engine.NewCacheEngine(store, m, logger)

	c, err := cache.NewShardedCache(cfg.Shards, cfg.Capacity, eng)
	if err != nil {
		return err
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	v, _, err := c.Get(ctx, "a")
	if err != nil {
		return err
	}
	fmt.Println("CACHE  → GET a =", v)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	v, _, _ = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v)
	f, _ := c.Frequency("a")
	fmt.Println("CACHE  → frequency of a =", f)

	// ====================================================
	fmt.Println("\n==================== 3) SINGLEFLIGHT ====================")

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _, _ := c.Get(ctx, "b")
			fmt.Printf("GOROUTINE-%d → GET b = %v\n", id, val)
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 4) EVICTION ====================")

	for i := 0; i < cfg.Capacity+50; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	v, ok, _ := c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a after eviction =", v, ok)

	// ====================================================
	fmt.Println("\n==================== 5) REMOVE ====================")

	fmt.Println("CACHE  → REMOVE b =", c.Remove("b"))
	v, ok, _ = c.Get(ctx, "b")
	fmt.Println("CACHE  → GET b after remove (reloaded) =", v, ok)

	// ====================================================
	snap := m.Snapshot()
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS        : %d\n", snap.Hits)
	fmt.Printf("MISSES      : %d\n", snap.Misses)
	fmt.Printf("EVICTIONS   : %d\n", snap.Evictions)
	fmt.Printf("LOAD ERRORS : %d\n", snap.LoadErrors)
	fmt.Printf("HIT RATIO   : %.2f\n", snap.HitRatio())
	fmt.Printf("RESIDENT    : %d / %d\n", c.Len(), c.Cap())
	return nil
}
