// Package factorcache memoizes computed factor series behind a cost-aware
// Adaptive Replacement Cache. Callers look a key up with Get; on a miss they
// compute the series themselves (or hand the computation to GetOrCompute) and
// store it with Put together with an estimate of the recomputation cost. The
// eviction policy balances recency against frequency the way classic ARC
// does, and within the chosen list prefers to drop cheap, cold, stale series
// over expensive ones.
package factorcache

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/factorcache/internal/constants"
	"github.com/hyp3rd/factorcache/internal/sentinel"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
	"github.com/hyp3rd/factorcache/types"
)

// FactorCache is the memoization service. It owns the eviction algorithm
// (which in turn owns every resident value), a stats collector, and an
// optional management HTTP endpoint. It is an explicit, instantiable object:
// construct one with New and hand it to whichever component needs
// memoization.
type FactorCache struct {
	mutex                 sync.RWMutex // guards the algorithm handle (swapped on Clear)
	algorithm             eviction.IAlgorithm
	registry              *eviction.AlgorithmRegistry
	evictionAlgorithmName string
	capacity              int
	statsCollector        stats.ICollector
	statsCollectorName    string
	tuning                []eviction.Option
	mgmtAddr              string
	mgmt                  *ManagementHTTPServer
}

// New creates a new factor cache with the given capacity.
// If the capacity is negative, it returns an error; a capacity of zero yields
// a cache where every Put is a no-op and every Get misses.
func New(ctx context.Context, capacity int, options ...Option) (*FactorCache, error) {
	if capacity < 0 {
		return nil, ewrap.Wrap(sentinel.ErrInvalidCapacity, "capacity")
	}

	cache := &FactorCache{
		capacity:              capacity,
		registry:              eviction.NewAlgorithmRegistry(),
		evictionAlgorithmName: constants.DefaultEvictionAlgorithm,
		statsCollectorName:    constants.DefaultStatsCollector,
	}

	// Apply options
	for _, option := range options {
		option(cache)
	}

	collector, err := stats.NewCollector(cache.statsCollectorName)
	if err != nil {
		return nil, err
	}

	cache.statsCollector = collector

	algorithm, err := cache.registry.NewAlgorithm(cache.evictionAlgorithmName, capacity, cache.tuning...)
	if err != nil {
		return nil, err
	}

	cache.algorithm = algorithm

	if cache.mgmtAddr != "" {
		cache.mgmt = NewManagementHTTPServer(cache.mgmtAddr)

		err = cache.mgmt.Start(ctx, cache)
		if err != nil {
			return nil, err
		}
	}

	return cache, nil
}

// alg returns the current algorithm handle.
func (fc *FactorCache) alg() eviction.IAlgorithm {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()

	return fc.algorithm
}

// Get retrieves a value from the cache using the key. A miss is not an
// error: it signals the caller to recompute.
func (fc *FactorCache) Get(_ context.Context, key string) (any, bool) {
	start := time.Now()
	defer func() {
		fc.statsCollector.Timing(types.StatGetDuration, time.Since(start).Nanoseconds())
	}()

	fc.statsCollector.Incr(types.StatGetCount, 1)

	return fc.alg().Get(key)
}

// Put stores a value in the cache with the caller's estimate of its
// recomputation cost. A negative cost is rejected with
// sentinel.ErrInvalidCost before any state is touched; a later Put for a
// resident key replaces the stored value and cost in place.
func (fc *FactorCache) Put(_ context.Context, key string, value any, cost float64) error {
	if strings.TrimSpace(key) == "" {
		return sentinel.ErrInvalidKey
	}

	if value == nil {
		return sentinel.ErrNilValue
	}

	if cost < 0 {
		return sentinel.ErrInvalidCost
	}

	start := time.Now()
	defer func() {
		fc.statsCollector.Timing(types.StatPutDuration, time.Since(start).Nanoseconds())
	}()

	fc.statsCollector.Incr(types.StatPutCount, 1)
	fc.statsCollector.Histogram(types.StatComputeCost, int64(math.Round(cost)))

	return fc.alg().Put(key, value, cost)
}

// GetOrCompute retrieves a value from the cache, or on a miss runs the
// compute function and stores its result. The compute step runs outside any
// cache lock: its latency, timeout, and retry policy are the caller's
// concern, and concurrent callers may compute the same key independently.
func (fc *FactorCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (any, error) {
	if compute == nil {
		return nil, sentinel.ErrNilCompute
	}

	if value, ok := fc.Get(ctx, key); ok {
		return value, nil
	}

	start := time.Now()

	value, cost, err := compute(ctx)
	if err != nil {
		return nil, ewrap.Wrap(err, "compute factor")
	}

	fc.statsCollector.Incr(types.StatComputeCount, 1)
	fc.statsCollector.Timing(types.StatComputeDuration, time.Since(start).Nanoseconds())

	err = fc.Put(ctx, key, value, cost)
	if err != nil {
		return nil, err
	}

	return value, nil
}

// GetMultiple retrieves a list of values from the cache using the keys.
// Missing keys are reported in the failed map with sentinel.ErrKeyNotFound.
func (fc *FactorCache) GetMultiple(ctx context.Context, keys ...string) (map[string]any, map[string]error) {
	result := make(map[string]any, len(keys))
	failed := make(map[string]error)

	for _, key := range keys {
		value, ok := fc.Get(ctx, key)
		if !ok {
			failed[key] = sentinel.ErrKeyNotFound

			continue
		}

		result[key] = value
	}

	return result, failed
}

// Remove removes values from the cache using the keys. Unknown keys are ignored.
func (fc *FactorCache) Remove(ctx context.Context, keys ...string) error {
	done := make(chan struct{})

	go func() {
		defer close(done)

		algorithm := fc.alg()
		for _, key := range keys {
			algorithm.Delete(key)
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return sentinel.ErrTimeoutOrCanceled
	}
}

// Clear removes all values from the cache, including ghost history, by
// rebuilding the eviction algorithm. Collected statistics are kept.
func (fc *FactorCache) Clear(_ context.Context) error {
	algorithm, err := fc.registry.NewAlgorithm(fc.evictionAlgorithmName, fc.capacity, fc.tuning...)
	if err != nil {
		return err
	}

	fc.mutex.Lock()
	fc.algorithm = algorithm
	fc.mutex.Unlock()

	return nil
}

// Count returns the number of resident entries in the cache.
func (fc *FactorCache) Count(_ context.Context) int {
	return fc.alg().Len()
}

// Capacity returns the capacity of the cache.
func (fc *FactorCache) Capacity() int {
	return fc.capacity
}

// EvictionAlgorithm returns the name of the configured eviction algorithm.
func (fc *FactorCache) EvictionAlgorithm() string {
	return fc.evictionAlgorithmName
}

// EvictionState returns the eviction algorithm's counters and list state.
// Algorithms without internal state reporting return a zero snapshot.
func (fc *FactorCache) EvictionState() eviction.Stats {
	if reporter, ok := fc.alg().(eviction.IStateReporter); ok {
		return reporter.Stats()
	}

	return eviction.Stats{}
}

// GetStats returns the statistics collected by the stats collector.
func (fc *FactorCache) GetStats() stats.Stats {
	return fc.statsCollector.GetStats()
}

// TriggerEviction evicts one entry according to the eviction policy and
// returns its key.
func (fc *FactorCache) TriggerEviction(_ context.Context) (string, bool) {
	return fc.alg().Evict()
}

// Entries returns metadata snapshots of the resident entries, sorted by the
// given field. Algorithms without entry listing return nil.
func (fc *FactorCache) Entries(sortBy types.SortingField, ascending bool) []eviction.EntryInfo {
	lister, ok := fc.alg().(eviction.IEntryLister)
	if !ok {
		return nil
	}

	entries := lister.Entries()

	less := entryLess(sortBy)
	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return less(entries[i], entries[j])
		}

		return less(entries[j], entries[i])
	})

	return entries
}

// entryLess returns the comparison function for a sorting field.
func entryLess(sortBy types.SortingField) func(a, b eviction.EntryInfo) bool {
	switch sortBy {
	case types.SortByLastAccess:
		return func(a, b eviction.EntryInfo) bool { return a.LastAccess < b.LastAccess }
	case types.SortByAccessCount:
		return func(a, b eviction.EntryInfo) bool { return a.AccessCount < b.AccessCount }
	case types.SortByComputeCost:
		return func(a, b eviction.EntryInfo) bool { return a.ComputeCost < b.ComputeCost }
	case types.SortByKey:
		return func(a, b eviction.EntryInfo) bool { return a.Key < b.Key }
	default:
		return func(a, b eviction.EntryInfo) bool { return a.Key < b.Key }
	}
}

// ManagementHTTPAddress returns the bound management address, or an empty
// string when the management server is disabled or not started.
func (fc *FactorCache) ManagementHTTPAddress() string {
	if fc.mgmt == nil {
		return ""
	}

	return fc.mgmt.Address()
}

// Stop stops the cache service and its management endpoint.
func (fc *FactorCache) Stop(ctx context.Context) error {
	if fc.mgmt == nil {
		return nil
	}

	return fc.mgmt.Shutdown(ctx)
}
