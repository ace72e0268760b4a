// Package factor provides the key and payload types used when memoizing
// computed factor series. The cache itself treats both as opaque; this
// package only exists so callers build stable keys the same way.
package factor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key identifies one computed factor series: the factor name, its parameters,
// and the identity of the data window it was computed over. Two keys are equal
// exactly when the computation they describe is identical.
type Key struct {
	// Name of the factor, e.g. "ema" or "rolling_skew".
	Name string
	// Params holds the numeric parameters of the factor, e.g. {"period": 20}.
	Params map[string]float64
	// Window identifies the underlying data slice, e.g. "BTCUSDT:1h:2024-01-02T00:00Z:2024-06-30T00:00Z".
	Window string
}

// String returns the cache key: the factor name joined with an xxhash digest
// of the canonical form. The digest keeps keys short and uniform regardless
// of how many parameters the factor takes.
func (k Key) String() string {
	return fmt.Sprintf("%s:%016x", k.Name, xxhash.Sum64String(k.canonical()))
}

// canonical renders the key fields in a deterministic order so that equal
// keys always hash identically. Map iteration order must not leak in.
func (k Key) canonical() string {
	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}

	sort.Strings(names)

	var sb strings.Builder

	sb.WriteString(k.Name)
	sb.WriteByte('|')

	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(k.Params[name], 'g', -1, 64))
		sb.WriteByte(',')
	}

	sb.WriteByte('|')
	sb.WriteString(k.Window)

	return sb.String()
}
