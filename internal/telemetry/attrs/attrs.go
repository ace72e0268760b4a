// Package attrs defines telemetry attribute keys used for observability and
// monitoring across the factorcache system. These constants provide
// standardized key names for metrics, traces, and logs to ensure consistent
// telemetry data collection.
package attrs

const (
	// AttrKeyLength represents the telemetry attribute key for measuring the length
	// of a cache key in bytes.
	AttrKeyLength = "key.len"
	// AttrKeysCount represents the telemetry attribute key for measuring the number
	// of cache keys being processed.
	AttrKeysCount = "keys.count"
	// AttrResultCount represents the telemetry attribute key for measuring the number
	// of cache results returned.
	AttrResultCount = "result.count"
	// AttrFailedCount represents the telemetry attribute key for measuring the number
	// of cache operations that failed.
	AttrFailedCount = "failed.count"
	// AttrComputeCost represents the telemetry attribute key for the compute cost
	// supplied with a Put. It tracks how expensive the cached series was to produce.
	AttrComputeCost = "compute.cost"
	// AttrHit represents the telemetry attribute key marking whether a lookup
	// found a resident entry.
	AttrHit = "hit"
)
