// Package constants defines default configuration values for the factorcache
// system: the default eviction algorithm, stats collector, and the tuning
// knobs of the cost-aware priority score.
package constants

const (
	// DefaultEvictionAlgorithm is the default eviction algorithm to use.
	// The cost-aware ARC is the reason this library exists, so it is the default.
	DefaultEvictionAlgorithm = "arc"

	// DefaultStatsCollector is the name of the default stats collector.
	DefaultStatsCollector = "default"

	// DefaultReferenceMaxAccessCount is the normalization denominator of the
	// access-frequency term of the eviction priority score. Access counts at or
	// above this value saturate the frequency term at 1.0.
	DefaultReferenceMaxAccessCount uint64 = 100

	// DefaultTimeDecayUnit is the number of logical clock ticks that make up one
	// unit of age in the time-decay term of the eviction priority score. One tick
	// corresponds to one cache operation.
	DefaultTimeDecayUnit int64 = 1
)
