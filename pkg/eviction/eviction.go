// Package eviction implements the eviction algorithms used by factorcache.
// The cost-aware ARC is the primary algorithm; a plain LRU is kept as a
// cost-oblivious baseline for A/B comparison in backtests.
package eviction

import (
	"maps"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/factorcache/internal/constants"
	"github.com/hyp3rd/factorcache/internal/sentinel"
)

// IAlgorithm is the interface that must be implemented by eviction algorithms.
// Keys are opaque to the algorithm beyond equality and hashing; values are
// owned by the algorithm while resident and dropped on eviction.
type IAlgorithm interface {
	// Get retrieves the item with the given key, updating recency/frequency state.
	Get(key string) (any, bool)
	// Put inserts or updates an item. The cost is the caller's estimate of how
	// expensive the value is to recompute; a negative cost is rejected with
	// sentinel.ErrInvalidCost.
	Put(key string, value any, cost float64) error
	// Delete removes the item with the given key.
	Delete(key string)
	// Evict removes the next victim chosen by the algorithm and returns its key.
	Evict() (string, bool)
	// Len returns the number of resident items.
	Len() int
}

// IStateReporter is implemented by algorithms that expose internal state
// beyond the resident count. The cost-aware ARC reports its four list lengths
// and the adaptive partition target through this interface.
type IStateReporter interface {
	Stats() Stats
}

// Stats is a snapshot of an algorithm's counters and internal state.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	GhostHits uint64 `json:"ghostHits"`
	T1Len     int    `json:"t1Len"`
	T2Len     int    `json:"t2Len"`
	B1Len     int    `json:"b1Len"`
	B2Len     int    `json:"b2Len"`
	P         int    `json:"p"`
}

// Tuning holds the knobs of the cost-aware priority score. Algorithms that do
// not score by cost ignore it.
type Tuning struct {
	// ReferenceMaxAccessCount normalizes the access-frequency term; counts at or
	// above it saturate at 1.0.
	ReferenceMaxAccessCount uint64
	// DecayUnit is the number of logical clock ticks per unit of age in the
	// time-decay term.
	DecayUnit int64
}

// Option configures algorithm tuning.
type Option func(*Tuning)

// WithReferenceMaxAccessCount sets the frequency normalization denominator.
// Non-positive values are ignored.
func WithReferenceMaxAccessCount(n uint64) Option {
	return func(t *Tuning) {
		if n > 0 {
			t.ReferenceMaxAccessCount = n
		}
	}
}

// WithDecayUnit sets the number of logical ticks per unit of age.
// Non-positive values are ignored.
func WithDecayUnit(ticks int64) Option {
	return func(t *Tuning) {
		if ticks > 0 {
			t.DecayUnit = ticks
		}
	}
}

func defaultTuning(opts ...Option) Tuning {
	tuning := Tuning{
		ReferenceMaxAccessCount: constants.DefaultReferenceMaxAccessCount,
		DecayUnit:               constants.DefaultTimeDecayUnit,
	}
	for _, opt := range opts {
		opt(&tuning)
	}

	return tuning
}

// AlgorithmRegistry manages eviction algorithm constructors.
type AlgorithmRegistry struct {
	algorithms map[string]func(capacity int, opts ...Option) (IAlgorithm, error)
}

// getDefaultAlgorithms returns the default set of eviction algorithms.
func getDefaultAlgorithms() map[string]func(capacity int, opts ...Option) (IAlgorithm, error) {
	return map[string]func(capacity int, opts ...Option) (IAlgorithm, error){
		"arc": func(capacity int, opts ...Option) (IAlgorithm, error) {
			return NewCostAwareARC[string, any](capacity, opts...)
		},
		"lru": func(capacity int, opts ...Option) (IAlgorithm, error) {
			return NewLRUAlgorithm(capacity, opts...)
		},
	}
}

// NewAlgorithmRegistry creates a new algorithm registry.
func NewAlgorithmRegistry() *AlgorithmRegistry {
	registry := &AlgorithmRegistry{
		algorithms: make(map[string]func(capacity int, opts ...Option) (IAlgorithm, error)),
	}
	// Register the default algorithms
	registry.RegisterMultiple(getDefaultAlgorithms())

	return registry
}

// NewEmptyAlgorithmRegistry creates a new algorithm registry without default algorithms.
// This is useful for testing or when you want to register only specific algorithms.
func NewEmptyAlgorithmRegistry() *AlgorithmRegistry {
	return &AlgorithmRegistry{
		algorithms: make(map[string]func(capacity int, opts ...Option) (IAlgorithm, error)),
	}
}

// Register registers a new eviction algorithm with the given name.
func (r *AlgorithmRegistry) Register(name string, createFunc func(capacity int, opts ...Option) (IAlgorithm, error)) {
	r.algorithms[name] = createFunc
}

// RegisterMultiple registers a set of eviction algorithms.
func (r *AlgorithmRegistry) RegisterMultiple(algorithms map[string]func(capacity int, opts ...Option) (IAlgorithm, error)) {
	maps.Copy(r.algorithms, algorithms)
}

// NewAlgorithm creates a new eviction algorithm with the given capacity.
func (r *AlgorithmRegistry) NewAlgorithm(algorithmName string, capacity int, opts ...Option) (IAlgorithm, error) {
	// Check the parameters.
	if algorithmName == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "algorithmName")
	}

	if capacity < 0 {
		return nil, ewrap.Wrap(sentinel.ErrInvalidCapacity, "capacity")
	}

	createFunc, ok := r.algorithms[algorithmName]
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrAlgorithmNotFound, algorithmName)
	}

	return createFunc(capacity, opts...)
}

// NewEvictionAlgorithm creates a new eviction algorithm with the given capacity.
// It uses a new registry instance with default algorithms for each call.
func NewEvictionAlgorithm(algorithmName string, capacity int, opts ...Option) (IAlgorithm, error) {
	registry := NewAlgorithmRegistry()

	return registry.NewAlgorithm(algorithmName, capacity, opts...)
}
