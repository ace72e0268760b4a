package factorcache

import (
	"github.com/hyp3rd/factorcache/pkg/eviction"
)

// Option is a function type that can be used to configure the `FactorCache` struct.
type Option func(*FactorCache)

// WithEvictionAlgorithm is an option that sets the eviction algorithm name field of the `FactorCache` struct.
// The eviction algorithm name determines which eviction algorithm will be used to evict items from the cache.
// The eviction algorithm name must be one of the following:
//   - "arc" (cost-aware Adaptive Replacement Cache) - Implemented in `pkg/eviction/arc.go`, the default
//   - "lru" (Least Recently Used) - Implemented in `pkg/eviction/lru.go`, cost-oblivious baseline
func WithEvictionAlgorithm(name string) Option {
	return func(cache *FactorCache) {
		cache.evictionAlgorithmName = name
	}
}

// WithStatsCollector is an option that sets the stats collector by name.
// The stats collector is used to collect statistics about the cache.
func WithStatsCollector(name string) Option {
	return func(cache *FactorCache) {
		cache.statsCollectorName = name
	}
}

// WithReferenceMaxAccessCount sets the normalization denominator of the
// access-frequency term of the eviction priority score (default 100).
func WithReferenceMaxAccessCount(n uint64) Option {
	return func(cache *FactorCache) {
		cache.tuning = append(cache.tuning, eviction.WithReferenceMaxAccessCount(n))
	}
}

// WithTimeDecayUnit sets how many logical clock ticks make up one unit of age
// in the eviction priority score (default 1). Larger values make staleness
// dominate the score more slowly.
func WithTimeDecayUnit(ticks int64) Option {
	return func(cache *FactorCache) {
		cache.tuning = append(cache.tuning, eviction.WithDecayUnit(ticks))
	}
}

// WithManagementHTTP enables the management HTTP server on the given address.
// Pass a ":0" port for an ephemeral listener.
func WithManagementHTTP(addr string) Option {
	return func(cache *FactorCache) {
		cache.mgmtAddr = addr
	}
}
