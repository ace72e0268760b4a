// Package stats provides stats collectors for the factorcache service.
// Collectors aggregate named measurements (counts, timings, gauges) recorded
// by the service and its middlewares. Eviction-level state (list lengths, the
// adaptive partition target) is reported by the eviction algorithm itself and
// is not duplicated here.
package stats

// Stat holds the aggregates calculated for a single named statistic.
type Stat struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      int64   `json:"min"`
	Max      int64   `json:"max"`
	Count    int     `json:"count"`
	Sum      int64   `json:"sum"`
	Variance float64 `json:"variance"`
	Values   []int64 `json:"values,omitempty"`
}

// Stats maps stat names to their aggregates.
type Stats map[string]*Stat

// sum returns the sum of a set of values.
func sum(values []int64) int64 {
	var sum int64
	for _, value := range values {
		sum += value
	}

	return sum
}

// variance returns the variance of a set of values.
func variance(values []int64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var variance float64

	for _, value := range values {
		d := float64(value) - mean
		variance += d * d
	}

	return variance / float64(len(values))
}
