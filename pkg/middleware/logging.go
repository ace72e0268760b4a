// Package middleware provides various middleware implementations for the factorcache service.
// This package includes logging middleware that wraps the factorcache service to provide
// execution time logging and method call tracing for debugging and monitoring purposes.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/factorcache"
	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// Tested with logrus, and Uber's Zap (high-performance), but should work with any other logger that matches the interface.
type Logger interface {
	Printf(format string, v ...any)
	// Errorf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the factorcache.Service interface.
type LoggingMiddleware struct {
	next   factorcache.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next factorcache.Service, logger Logger) factorcache.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Get logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Get(ctx context.Context, key string) (any, bool) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Get took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Get method called with key: %s", key)

	return mw.next.Get(ctx, key)
}

// Put logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Put(ctx context.Context, key string, value any, cost float64) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Put took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Put method called with key: %s cost: %f", key, cost)

	return mw.next.Put(ctx, key, value, cost)
}

// GetOrCompute logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) GetOrCompute(ctx context.Context, key string, compute factorcache.ComputeFunc) (any, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method GetOrCompute took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("GetOrCompute method invoked with key: %s", key)

	return mw.next.GetOrCompute(ctx, key, compute)
}

// GetMultiple logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) GetMultiple(ctx context.Context, keys ...string) (map[string]any, map[string]error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method GetMultiple took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("GetMultiple method invoked with keys: %s", keys)

	return mw.next.GetMultiple(ctx, keys...)
}

// Remove logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Remove(ctx context.Context, keys ...string) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Remove took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Remove method invoked with keys: %s", keys)

	return mw.next.Remove(ctx, keys...)
}

// Clear logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Clear(ctx context.Context) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Clear took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Clear method invoked")

	return mw.next.Clear(ctx)
}

// Capacity takes to execute the next middleware.
func (mw LoggingMiddleware) Capacity() int {
	return mw.next.Capacity()
}

// EvictionAlgorithm returns the configured eviction algorithm name.
func (mw LoggingMiddleware) EvictionAlgorithm() string {
	return mw.next.EvictionAlgorithm()
}

// EvictionState returns the eviction algorithm's counters and list state.
func (mw LoggingMiddleware) EvictionState() eviction.Stats {
	return mw.next.EvictionState()
}

// Count takes to execute the next middleware.
func (mw LoggingMiddleware) Count(ctx context.Context) int {
	return mw.next.Count(ctx)
}

// TriggerEviction logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) TriggerEviction(ctx context.Context) (string, bool) {
	defer func(begin time.Time) {
		mw.logger.Printf("method TriggerEviction took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("TriggerEviction method invoked")

	return mw.next.TriggerEviction(ctx)
}

// Stop logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Stop(ctx context.Context) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Stop took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Stop method invoked")

	return mw.next.Stop(ctx)
}

// GetStats logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) GetStats() stats.Stats {
	defer func(begin time.Time) {
		mw.logger.Printf("method GetStats took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("GetStats method invoked")

	return mw.next.GetStats()
}
