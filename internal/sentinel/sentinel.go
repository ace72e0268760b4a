// Package sentinel provides standardized error definitions for the factorcache system.
// This package centralizes all error types used across the factorcache components,
// ensuring consistent error handling and messaging throughout the library.
//
// The errors defined here cover:
// - Invalid configuration parameters (capacity, tuning values, empty params)
// - Cache operation inputs rejected at the API boundary (keys, values, costs)
// - Component lookup failures (algorithms, serializers, stats collectors)
// - Runtime operation errors (timeouts, cancellations, management server shutdown)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidKey is returned when an invalid key is used to access an item in the cache.
	// An invalid key is a key that is either empty or consists only of whitespace characters.
	ErrInvalidKey = ewrap.New("invalid key")

	// ErrKeyNotFound is returned when a key is not found in the cache.
	ErrKeyNotFound = ewrap.New("key not found")

	// ErrNilValue is returned when a nil value is attempted to be set in the cache.
	ErrNilValue = ewrap.New("nil value")

	// ErrNilCompute is returned when GetOrCompute is called with a nil compute function.
	ErrNilCompute = ewrap.New("nil compute function")

	// ErrInvalidCost is returned when a negative compute cost is passed to the cache.
	// A negative cost would invert the eviction bias, so it is rejected at the
	// boundary rather than clamped.
	ErrInvalidCost = ewrap.New("compute cost cannot be negative")

	// ErrInvalidCapacity is returned when an invalid capacity is passed to the cache.
	ErrInvalidCapacity = ewrap.New("capacity cannot be negative")

	// ErrAlgorithmNotFound is returned when an eviction algorithm is not found.
	ErrAlgorithmNotFound = ewrap.New("algorithm not found")

	// ErrStatsCollectorNotFound is returned when a stats collector is not found.
	ErrStatsCollectorNotFound = ewrap.New("stats collector not found")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrTimeoutOrCanceled is returned when a timeout or cancellation occurs.
	ErrTimeoutOrCanceled = ewrap.New("the operation timed out or was canceled")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
