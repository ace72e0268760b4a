package stats

import (
	"errors"
	"testing"

	"github.com/hyp3rd/factorcache/internal/sentinel"
	"github.com/hyp3rd/factorcache/types"
)

const testStat types.Stat = "factorcache_test_stat"

func TestHistogramStatsCollector_Aggregates(t *testing.T) {
	collector := NewHistogramStatsCollector()

	for _, value := range []int64{4, 1, 3, 2} {
		collector.Histogram(testStat, value)
	}

	if got := collector.Mean(testStat); got != 2.5 {
		t.Error("expected mean to be 2.5, got", got)
	}

	if got := collector.Median(testStat); got != 2.5 {
		t.Error("expected median to be 2.5, got", got)
	}

	if got := collector.Percentile(testStat, 0.5); got != 3 {
		t.Error("expected 50th percentile to be 3, got", got)
	}

	if got := collector.Percentile(testStat, 1.0); got != 4 {
		t.Error("expected 100th percentile to clamp to the max, got", got)
	}

	stats := collector.GetStats()

	stat, ok := stats[testStat.String()]
	if !ok {
		t.Fatal("expected the stat to be present")
	}

	if stat.Min != 1 || stat.Max != 4 || stat.Count != 4 || stat.Sum != 10 {
		t.Errorf("unexpected aggregates: %+v", stat)
	}

	if stat.Variance != 1.25 {
		t.Error("expected variance to be 1.25, got", stat.Variance)
	}
}

func TestHistogramStatsCollector_IncrDecr(t *testing.T) {
	collector := NewHistogramStatsCollector()

	collector.Incr(testStat, 5)
	collector.Decr(testStat, 2)
	collector.Timing(testStat, 7)
	collector.Gauge(testStat, 1)

	stats := collector.GetStats()

	stat, ok := stats[testStat.String()]
	if !ok {
		t.Fatal("expected the stat to be present")
	}

	if stat.Count != 4 {
		t.Error("expected 4 recorded values, got", stat.Count)
	}
	if stat.Sum != 11 {
		t.Error("expected sum to be 11, got", stat.Sum)
	}
	if stat.Min != -2 {
		t.Error("expected min to be -2, got", stat.Min)
	}
}

func TestHistogramStatsCollector_Empty(t *testing.T) {
	collector := NewHistogramStatsCollector()

	if got := collector.Mean(testStat); got != 0 {
		t.Error("expected mean of no values to be 0, got", got)
	}

	if got := collector.Median(testStat); got != 0 {
		t.Error("expected median of no values to be 0, got", got)
	}

	if got := collector.Percentile(testStat, 0.9); got != 0 {
		t.Error("expected percentile of no values to be 0, got", got)
	}

	if stats := collector.GetStats(); len(stats) != 0 {
		t.Error("expected no stats, got", stats)
	}
}

func TestCollectorRegistry(t *testing.T) {
	collector, err := NewCollector("default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if collector == nil {
		t.Fatal("expected a collector")
	}

	_, err = NewCollector("")
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Errorf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	_, err = NewCollector("unknown")
	if !errors.Is(err, sentinel.ErrStatsCollectorNotFound) {
		t.Errorf("expected ErrStatsCollectorNotFound, got %v", err)
	}

	registry := NewEmptyCollectorRegistry()

	_, err = registry.NewCollector("default")
	if !errors.Is(err, sentinel.ErrStatsCollectorNotFound) {
		t.Errorf("expected ErrStatsCollectorNotFound in an empty registry, got %v", err)
	}

	registry.Register("custom", func() (ICollector, error) {
		return NewHistogramStatsCollector(), nil
	})

	_, err = registry.NewCollector("custom")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
