package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/factorcache"
	"github.com/hyp3rd/factorcache/internal/telemetry/attrs"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  factorcache.Service
	meter metric.Meter

	// instruments
	calls     metric.Int64Counter
	durations metric.Float64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next factorcache.Service, meter metric.Meter) (factorcache.Service, error) {
	calls, err := meter.Int64Counter("factorcache.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("factorcache.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	return &OTelMetricsMiddleware{next: next, meter: meter, calls: calls, durations: durations}, nil
}

// Get implements Service.Get with metrics.
func (mw *OTelMetricsMiddleware) Get(ctx context.Context, key string) (any, bool) {
	start := time.Now()
	v, ok := mw.next.Get(ctx, key)
	mw.rec(ctx, "Get", start, attribute.Int(attrs.AttrKeyLength, len(key)), attribute.Bool(attrs.AttrHit, ok))

	return v, ok
}

// Put implements Service.Put with metrics.
func (mw *OTelMetricsMiddleware) Put(ctx context.Context, key string, value any, cost float64) error {
	start := time.Now()
	err := mw.next.Put(ctx, key, value, cost)
	mw.rec(ctx, "Put", start, attribute.Int(attrs.AttrKeyLength, len(key)), attribute.Float64(attrs.AttrComputeCost, cost))

	return err
}

// GetOrCompute implements Service.GetOrCompute with metrics.
func (mw *OTelMetricsMiddleware) GetOrCompute(ctx context.Context, key string, compute factorcache.ComputeFunc) (any, error) {
	start := time.Now()
	v, err := mw.next.GetOrCompute(ctx, key, compute)
	mw.rec(ctx, "GetOrCompute", start, attribute.Int(attrs.AttrKeyLength, len(key)))

	return v, err
}

// GetMultiple implements Service.GetMultiple with metrics.
func (mw *OTelMetricsMiddleware) GetMultiple(ctx context.Context, keys ...string) (map[string]any, map[string]error) {
	start := time.Now()
	res, failed := mw.next.GetMultiple(ctx, keys...)
	mw.rec(ctx, "GetMultiple", start,
		attribute.Int(attrs.AttrKeysCount, len(keys)),
		attribute.Int(attrs.AttrResultCount, len(res)),
		attribute.Int(attrs.AttrFailedCount, len(failed)))

	return res, failed
}

// Remove implements Service.Remove with metrics.
func (mw *OTelMetricsMiddleware) Remove(ctx context.Context, keys ...string) error {
	start := time.Now()
	err := mw.next.Remove(ctx, keys...)
	mw.rec(ctx, "Remove", start, attribute.Int(attrs.AttrKeysCount, len(keys)))

	return err
}

// Clear implements Service.Clear with metrics.
func (mw *OTelMetricsMiddleware) Clear(ctx context.Context) error {
	start := time.Now()
	err := mw.next.Clear(ctx)
	mw.rec(ctx, "Clear", start)

	return err
}

// Capacity returns cache capacity.
func (mw *OTelMetricsMiddleware) Capacity() int { return mw.next.Capacity() }

// EvictionAlgorithm returns the configured eviction algorithm name.
func (mw *OTelMetricsMiddleware) EvictionAlgorithm() string { return mw.next.EvictionAlgorithm() }

// EvictionState returns the eviction algorithm's counters and list state.
func (mw *OTelMetricsMiddleware) EvictionState() eviction.Stats { return mw.next.EvictionState() }

// Count returns items count.
func (mw *OTelMetricsMiddleware) Count(ctx context.Context) int { return mw.next.Count(ctx) }

// TriggerEviction triggers eviction with metrics.
func (mw *OTelMetricsMiddleware) TriggerEviction(ctx context.Context) (string, bool) {
	start := time.Now()
	key, ok := mw.next.TriggerEviction(ctx)
	mw.rec(ctx, "TriggerEviction", start, attribute.Bool("evicted", ok))

	return key, ok
}

// Stop stops the underlying service.
func (mw *OTelMetricsMiddleware) Stop(ctx context.Context) error { return mw.next.Stop(ctx) }

// GetStats returns stats.
func (mw *OTelMetricsMiddleware) GetStats() stats.Stats { return mw.next.GetStats() }

// rec records call count and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, attributes ...attribute.KeyValue) {
	base := []attribute.KeyValue{attribute.String("method", method)}
	if len(attributes) > 0 {
		base = append(base, attributes...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(base...))
}
