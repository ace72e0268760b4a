package types

// SortingField is a type that represents the field to sort cache entries by.
type SortingField string

// Constants for the different fields that cache entries can be sorted by.
const (
	SortByKey         SortingField = "Key"         // Sort by the key of the cache entry
	SortByLastAccess  SortingField = "LastAccess"  // Sort by the last access tick of the cache entry
	SortByAccessCount SortingField = "AccessCount" // Sort by the number of times the cache entry has been accessed
	SortByComputeCost SortingField = "ComputeCost" // Sort by the compute cost of the cache entry
)

// String returns the string representation of the SortingField.
func (f SortingField) String() string {
	return string(f)
}

// Stat is a type that represents a named statistic tracked by the stats collector.
type Stat string

const (
	// StatGetCount counts Get calls.
	StatGetCount Stat = "factorcache_get_count"
	// StatGetDuration records Get latency.
	StatGetDuration Stat = "factorcache_get_duration"
	// StatPutCount counts Put calls.
	StatPutCount Stat = "factorcache_put_count"
	// StatPutDuration records Put latency.
	StatPutDuration Stat = "factorcache_put_duration"
	// StatComputeCount counts compute-function invocations made through GetOrCompute.
	StatComputeCount Stat = "factorcache_compute_count"
	// StatComputeDuration records how long compute functions ran.
	StatComputeDuration Stat = "factorcache_compute_duration"
	// StatComputeCost records the compute cost reported with each Put.
	StatComputeCost Stat = "factorcache_compute_cost"
)

// String returns the string representation of a Stat.
func (s Stat) String() string {
	return string(s)
}
