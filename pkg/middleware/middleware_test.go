package middleware

import (
	"context"
	"fmt"
	"strings"
	"testing"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/hyp3rd/factorcache"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func newService(t *testing.T) factorcache.Service {
	t.Helper()

	svc, err := factorcache.New(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return svc
}

func exercise(t *testing.T, svc factorcache.Service) {
	t.Helper()

	ctx := context.Background()

	err := svc.Put(ctx, "key1", "value1", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, ok := svc.Get(ctx, "key1"); !ok {
		t.Error("expected hit on key1")
	}

	_, err = svc.GetOrCompute(ctx, "key2", func(_ context.Context) (any, float64, error) {
		return "computed", 2.0, nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	result, failed := svc.GetMultiple(ctx, "key1", "key2", "missing")
	if len(result) != 2 || len(failed) != 1 {
		t.Errorf("expected 2 results and 1 failure, got %d/%d", len(result), len(failed))
	}

	if svc.Count(ctx) != 2 {
		t.Error("expected count to be 2, got", svc.Count(ctx))
	}

	if svc.Capacity() != 4 {
		t.Error("expected capacity to be 4, got", svc.Capacity())
	}

	if svc.EvictionAlgorithm() != "arc" {
		t.Error("expected arc, got", svc.EvictionAlgorithm())
	}

	if _, ok := svc.TriggerEviction(ctx); !ok {
		t.Error("expected a victim")
	}

	err = svc.Remove(ctx, "key2")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if got := svc.GetStats(); got == nil {
		t.Error("expected stats, got nil")
	}

	if state := svc.EvictionState(); state.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %+v", state)
	}

	err = svc.Clear(ctx)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = svc.Stop(ctx)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	logger := &recordingLogger{}

	svc := factorcache.ApplyMiddleware(newService(t), func(next factorcache.Service) factorcache.Service {
		return NewLoggingMiddleware(next, logger)
	})

	exercise(t, svc)

	if len(logger.lines) == 0 {
		t.Fatal("expected log lines")
	}

	found := false

	for _, line := range logger.lines {
		if strings.Contains(line, "Put method called with key: key1") {
			found = true

			break
		}
	}

	if !found {
		t.Errorf("expected a Put log line, got %v", logger.lines)
	}
}

func TestStatsCollectorMiddleware(t *testing.T) {
	collector, err := stats.NewCollector("default")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := factorcache.ApplyMiddleware(newService(t), func(next factorcache.Service) factorcache.Service {
		return NewStatsCollectorMiddleware(next, collector)
	})

	exercise(t, svc)

	collected := collector.GetStats()

	if _, ok := collected["factorcache_mw_put_count"]; !ok {
		t.Errorf("expected middleware put counter, got %v", collected)
	}

	if _, ok := collected["factorcache_mw_get_duration"]; !ok {
		t.Errorf("expected middleware get timing, got %v", collected)
	}
}

func TestOTelMetricsMiddleware(t *testing.T) {
	meter := metricnoop.NewMeterProvider().Meter("test")

	svc := newService(t)

	wrapped, err := NewOTelMetricsMiddleware(svc, meter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exercise(t, wrapped)
}

func TestOTelTracingMiddleware(t *testing.T) {
	tracer := tracenoop.NewTracerProvider().Tracer("test")

	svc := factorcache.ApplyMiddleware(newService(t), func(next factorcache.Service) factorcache.Service {
		return NewOTelTracingMiddleware(next, tracer)
	})

	exercise(t, svc)
}
