// Package middleware provides various middleware implementations for the factorcache service.
// This package includes stats middleware that collects and reports cache operation statistics.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/factorcache"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

// StatsCollectorMiddleware is a middleware that collects stats. It can and should re-use the same stats collector as the factorcache.
// Must implement the factorcache.Service interface.
type StatsCollectorMiddleware struct {
	next           factorcache.Service
	statsCollector stats.ICollector
}

// NewStatsCollectorMiddleware returns a new StatsCollectorMiddleware.
func NewStatsCollectorMiddleware(next factorcache.Service, statsCollector stats.ICollector) factorcache.Service {
	return &StatsCollectorMiddleware{next: next, statsCollector: statsCollector}
}

// Get collects stats for the Get method.
func (mw StatsCollectorMiddleware) Get(ctx context.Context, key string) (any, bool) {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_get_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_get_count", 1)
	}()

	return mw.next.Get(ctx, key)
}

// Put collects stats for the Put method.
func (mw StatsCollectorMiddleware) Put(ctx context.Context, key string, value any, cost float64) error {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_put_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_put_count", 1)
	}()

	return mw.next.Put(ctx, key, value, cost)
}

// GetOrCompute collects stats for the GetOrCompute method.
func (mw StatsCollectorMiddleware) GetOrCompute(ctx context.Context, key string, compute factorcache.ComputeFunc) (any, error) {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_get_or_compute_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_get_or_compute_count", 1)
	}()

	return mw.next.GetOrCompute(ctx, key, compute)
}

// GetMultiple collects stats for the GetMultiple method.
func (mw StatsCollectorMiddleware) GetMultiple(ctx context.Context, keys ...string) (map[string]any, map[string]error) {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_get_multiple_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_get_multiple_count", 1)
	}()

	return mw.next.GetMultiple(ctx, keys...)
}

// Remove collects stats for the Remove method.
func (mw StatsCollectorMiddleware) Remove(ctx context.Context, keys ...string) error {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_remove_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_remove_count", 1)
	}()

	return mw.next.Remove(ctx, keys...)
}

// Clear collects stats for the Clear method.
func (mw StatsCollectorMiddleware) Clear(ctx context.Context) error {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_clear_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_clear_count", 1)
	}()

	return mw.next.Clear(ctx)
}

// Capacity returns the capacity of the cache.
func (mw StatsCollectorMiddleware) Capacity() int {
	return mw.next.Capacity()
}

// EvictionAlgorithm returns the configured eviction algorithm name.
func (mw StatsCollectorMiddleware) EvictionAlgorithm() string {
	return mw.next.EvictionAlgorithm()
}

// EvictionState returns the eviction algorithm's counters and list state.
func (mw StatsCollectorMiddleware) EvictionState() eviction.Stats {
	return mw.next.EvictionState()
}

// TriggerEviction triggers the eviction of the cache.
func (mw StatsCollectorMiddleware) TriggerEviction(ctx context.Context) (string, bool) {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_trigger_eviction_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_trigger_eviction_count", 1)
	}()

	return mw.next.TriggerEviction(ctx)
}

// Count returns the count of the items in the cache.
func (mw StatsCollectorMiddleware) Count(ctx context.Context) int {
	return mw.next.Count(ctx)
}

// Stop collects the stats for Stop methods and stops the cache and all its goroutines (if any).
func (mw StatsCollectorMiddleware) Stop(ctx context.Context) error {
	start := time.Now()

	defer func() {
		mw.statsCollector.Timing("factorcache_mw_stop_duration", time.Since(start).Nanoseconds())
		mw.statsCollector.Incr("factorcache_mw_stop_count", 1)
	}()

	return mw.next.Stop(ctx)
}

// GetStats returns the stats of the cache.
func (mw StatsCollectorMiddleware) GetStats() stats.Stats {
	return mw.next.GetStats()
}
