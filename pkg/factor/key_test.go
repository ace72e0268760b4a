package factor

import (
	"strings"
	"testing"
)

func TestKey_String(t *testing.T) {
	key := Key{
		Name:   "ema",
		Params: map[string]float64{"period": 20},
		Window: "BTCUSDT:1h:2024-01-02T00:00Z:2024-06-30T00:00Z",
	}

	rendered := key.String()
	if !strings.HasPrefix(rendered, "ema:") {
		t.Errorf("expected the key to carry the factor name, got %q", rendered)
	}

	// name + colon + 16 hex digits
	if len(rendered) != len("ema:")+16 {
		t.Errorf("expected a 16-digit digest, got %q", rendered)
	}
}

func TestKey_StringDeterministic(t *testing.T) {
	a := Key{
		Name:   "rolling_skew",
		Params: map[string]float64{"window": 30, "min_periods": 10, "ddof": 1},
		Window: "ETHUSDT:4h",
	}
	b := Key{
		Name:   "rolling_skew",
		Params: map[string]float64{"ddof": 1, "window": 30, "min_periods": 10},
		Window: "ETHUSDT:4h",
	}

	if a.String() != b.String() {
		t.Errorf("expected equal keys regardless of param order, got %q vs %q", a.String(), b.String())
	}
}

func TestKey_StringDistinguishes(t *testing.T) {
	base := Key{Name: "adx", Params: map[string]float64{"period": 14}, Window: "BTCUSDT:1d"}

	variants := []Key{
		{Name: "adx", Params: map[string]float64{"period": 21}, Window: "BTCUSDT:1d"},
		{Name: "adx", Params: map[string]float64{"period": 14}, Window: "BTCUSDT:4h"},
		{Name: "atr", Params: map[string]float64{"period": 14}, Window: "BTCUSDT:1d"},
	}

	for _, variant := range variants {
		if base.String() == variant.String() {
			t.Errorf("expected distinct keys for %+v and %+v", base, variant)
		}
	}
}

func TestSeries(t *testing.T) {
	var empty Series

	if _, ok := empty.Last(); ok {
		t.Error("expected no last point in an empty series")
	}

	series := Series{
		{Time: 0, Value: 1.5},
		{Time: 3600, Value: 2.5},
	}

	last, ok := series.Last()
	if !ok || last.Value != 2.5 {
		t.Errorf("expected last value 2.5, got %+v (ok=%v)", last, ok)
	}

	values := series.Values()
	if len(values) != 2 || values[0] != 1.5 || values[1] != 2.5 {
		t.Errorf("unexpected values: %v", values)
	}
}
