package serializer

import (
	"errors"
	"testing"

	"github.com/hyp3rd/factorcache/internal/sentinel"
)

type snapshot struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

func TestSerializers_RoundTrip(t *testing.T) {
	original := snapshot{Name: "ema", Count: 3, Cost: 2.5}

	for _, format := range []string{"default", "json", "msgpack", "cbor"} {
		ser, err := New(format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}

		data, err := ser.Marshal(original)
		if err != nil {
			t.Fatalf("%s: marshal: %v", format, err)
		}

		if len(data) == 0 {
			t.Errorf("%s: expected non-empty payload", format)
		}

		var decoded snapshot

		err = ser.Unmarshal(data, &decoded)
		if err != nil {
			t.Fatalf("%s: unmarshal: %v", format, err)
		}

		if decoded != original {
			t.Errorf("%s: expected %+v, got %+v", format, original, decoded)
		}
	}
}

func TestSerializerRegistry_Errors(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Errorf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	_, err = New("unknown")
	if !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Errorf("expected ErrSerializerNotFound, got %v", err)
	}
}

func TestSerializerRegistry_Register(t *testing.T) {
	registry := NewEmptySerializerRegistry()

	_, err := registry.New("json")
	if !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Errorf("expected ErrSerializerNotFound in an empty registry, got %v", err)
	}

	registry.Register("json", func() ISerializer {
		return &DefaultJSONSerializer{}
	})

	ser, err := registry.New("json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ser == nil {
		t.Fatal("expected a serializer")
	}
}
