package factorcache

import (
	"context"

	"github.com/hyp3rd/factorcache/pkg/eviction"
	"github.com/hyp3rd/factorcache/pkg/stats"
)

// ComputeFunc produces a factor series together with an estimate of how
// expensive the computation was. It is supplied per call and never stored by
// the cache, which stays agnostic to what is being cached.
type ComputeFunc func(ctx context.Context) (value any, cost float64, err error)

// Service is the service interface for the FactorCache.
// It enables middleware to be added to the service.
type Service interface {
	crud
	// Count returns the number of resident entries in the cache
	Count(ctx context.Context) int
	// Capacity returns the capacity of the cache
	Capacity() int
	// EvictionAlgorithm returns the name of the configured eviction algorithm
	EvictionAlgorithm() string
	// EvictionState returns the eviction algorithm's counters and list state
	EvictionState() eviction.Stats
	// GetStats returns the collected service statistics
	GetStats() stats.Stats
	// TriggerEviction evicts one entry and returns its key
	TriggerEviction(ctx context.Context) (string, bool)
	// Stop stops the cache service and its management endpoint
	Stop(ctx context.Context) error
}

type crud interface {
	// Get retrieves a value from the cache using the key
	Get(ctx context.Context, key string) (value any, ok bool)
	// Put stores a value in the cache with the caller's recomputation cost estimate
	Put(ctx context.Context, key string, value any, cost float64) error
	// GetOrCompute retrieves a value, or runs the compute function on a miss and stores the result
	GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (any, error)
	// GetMultiple retrieves a list of values from the cache using the keys
	GetMultiple(ctx context.Context, keys ...string) (result map[string]any, failed map[string]error)
	// Remove removes values from the cache using the keys
	Remove(ctx context.Context, keys ...string) error
	// Clear removes all values from the cache
	Clear(ctx context.Context) error
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
