package stats

import (
	"slices"
	"sync"

	"github.com/hyp3rd/factorcache/types"
)

// HistogramStatsCollector is a stats collector that keeps every recorded value
// and derives distribution aggregates on demand.
type HistogramStatsCollector struct {
	mu    sync.RWMutex // mutex to protect concurrent access to the stats
	stats map[string][]int64
}

// NewHistogramStatsCollector creates a new histogram stats collector.
func NewHistogramStatsCollector() *HistogramStatsCollector {
	return &HistogramStatsCollector{
		stats: make(map[string][]int64),
	}
}

// Incr increments the count of a statistic by the given value.
func (c *HistogramStatsCollector) Incr(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[stat.String()] = append(c.stats[stat.String()], value)
}

// Decr decrements the count of a statistic by the given value.
func (c *HistogramStatsCollector) Decr(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[stat.String()] = append(c.stats[stat.String()], -value)
}

// Timing records the time it took for an event to occur.
func (c *HistogramStatsCollector) Timing(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[stat.String()] = append(c.stats[stat.String()], value)
}

// Gauge records the current value of a statistic.
func (c *HistogramStatsCollector) Gauge(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[stat.String()] = append(c.stats[stat.String()], value)
}

// Histogram records the statistical distribution of a set of values.
func (c *HistogramStatsCollector) Histogram(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[stat.String()] = append(c.stats[stat.String()], value)
}

// Mean returns the mean value of a statistic.
func (c *HistogramStatsCollector) Mean(stat types.Stat) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return mean(c.stats[stat.String()])
}

// Median returns the median value of a statistic.
func (c *HistogramStatsCollector) Median(stat types.Stat) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return median(slices.Clone(c.stats[stat.String()]))
}

// Percentile returns the pth percentile value of a statistic, with p in [0, 1].
func (c *HistogramStatsCollector) Percentile(stat types.Stat, percentile float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := slices.Clone(c.stats[stat.String()])
	if len(values) == 0 {
		return 0
	}

	slices.Sort(values)

	index := min(int(float64(len(values))*percentile), len(values)-1)

	return float64(values[index])
}

// GetStats returns the stats collected by the stats collector.
// It calculates the mean, median, min, max, count, sum, and variance for each stat.
func (c *HistogramStatsCollector) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(Stats, len(c.stats))

	for stat, recorded := range c.stats {
		values := slices.Clone(recorded)
		slices.Sort(values)

		statMean := mean(values)

		stats[stat] = &Stat{
			Mean:     statMean,
			Median:   median(values),
			Min:      values[0],
			Max:      values[len(values)-1],
			Values:   values,
			Count:    len(values),
			Sum:      sum(values),
			Variance: variance(values, statMean),
		}
	}

	return stats
}

// mean returns the mean of a set of values.
func mean(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	return float64(sum(values)) / float64(len(values))
}

// median returns the median of a set of values. The slice is sorted in place.
func median(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	slices.Sort(values)

	mid := len(values) / 2
	if len(values)%2 == 0 {
		return float64(values[mid-1]+values[mid]) / 2
	}

	return float64(values[mid])
}
