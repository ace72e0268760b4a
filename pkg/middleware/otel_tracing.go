package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/factorcache"
	"github.com/hyp3rd/factorcache/internal/telemetry/attrs"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

// OTelTracingMiddleware wraps factorcache.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   factorcache.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next factorcache.Service, tracer trace.Tracer, opts ...OTelTracingOption) factorcache.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Get implements Service.Get with tracing.
func (mw OTelTracingMiddleware) Get(ctx context.Context, key string) (any, bool) {
	ctx, span := mw.startSpan(ctx, "factorcache.Get", attribute.Int(attrs.AttrKeyLength, len(key)))
	defer span.End()

	v, ok := mw.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool(attrs.AttrHit, ok))

	return v, ok
}

// Put implements Service.Put with tracing.
func (mw OTelTracingMiddleware) Put(ctx context.Context, key string, value any, cost float64) error {
	ctx, span := mw.startSpan(
		ctx, "factorcache.Put",
		attribute.Int(attrs.AttrKeyLength, len(key)),
		attribute.Float64(attrs.AttrComputeCost, cost))
	defer span.End()

	err := mw.next.Put(ctx, key, value, cost)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

// GetOrCompute implements Service.GetOrCompute with tracing.
func (mw OTelTracingMiddleware) GetOrCompute(ctx context.Context, key string, compute factorcache.ComputeFunc) (any, error) {
	ctx, span := mw.startSpan(ctx, "factorcache.GetOrCompute", attribute.Int(attrs.AttrKeyLength, len(key)))
	defer span.End()

	v, err := mw.next.GetOrCompute(ctx, key, compute)
	if err != nil {
		span.RecordError(err)
	}

	return v, err
}

// GetMultiple implements Service.GetMultiple with tracing.
func (mw OTelTracingMiddleware) GetMultiple(ctx context.Context, keys ...string) (map[string]any, map[string]error) {
	ctx, span := mw.startSpan(ctx, "factorcache.GetMultiple", attribute.Int(attrs.AttrKeysCount, len(keys)))
	defer span.End()

	res, failed := mw.next.GetMultiple(ctx, keys...)
	span.SetAttributes(
		attribute.Int(attrs.AttrResultCount, len(res)),
		attribute.Int(attrs.AttrFailedCount, len(failed)))

	return res, failed
}

// Remove implements Service.Remove with tracing.
func (mw OTelTracingMiddleware) Remove(ctx context.Context, keys ...string) error {
	ctx, span := mw.startSpan(ctx, "factorcache.Remove", attribute.Int(attrs.AttrKeysCount, len(keys)))
	defer span.End()

	err := mw.next.Remove(ctx, keys...)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

// Clear implements Service.Clear with tracing.
func (mw OTelTracingMiddleware) Clear(ctx context.Context) error {
	ctx, span := mw.startSpan(ctx, "factorcache.Clear")
	defer span.End()

	err := mw.next.Clear(ctx)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

// Capacity returns cache capacity.
func (mw OTelTracingMiddleware) Capacity() int { return mw.next.Capacity() }

// EvictionAlgorithm returns the configured eviction algorithm name.
func (mw OTelTracingMiddleware) EvictionAlgorithm() string { return mw.next.EvictionAlgorithm() }

// EvictionState returns the eviction algorithm's counters and list state.
func (mw OTelTracingMiddleware) EvictionState() eviction.Stats { return mw.next.EvictionState() }

// Count returns items count.
func (mw OTelTracingMiddleware) Count(ctx context.Context) int { return mw.next.Count(ctx) }

// TriggerEviction triggers eviction with a span.
func (mw OTelTracingMiddleware) TriggerEviction(ctx context.Context) (string, bool) {
	ctx, span := mw.startSpan(ctx, "factorcache.TriggerEviction")
	defer span.End()

	key, ok := mw.next.TriggerEviction(ctx)
	span.SetAttributes(attribute.Bool("evicted", ok))

	return key, ok
}

// Stop stops the service with a span.
func (mw OTelTracingMiddleware) Stop(ctx context.Context) error {
	ctx, span := mw.startSpan(ctx, "factorcache.Stop")
	defer span.End()

	return mw.next.Stop(ctx)
}

// GetStats returns stats.
func (mw OTelTracingMiddleware) GetStats() stats.Stats { return mw.next.GetStats() }

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}
