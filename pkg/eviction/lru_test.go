package eviction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hyp3rd/factorcache/internal/sentinel"
)

func TestLRU_GetPut(t *testing.T) {
	lru, err := NewLRUAlgorithm(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, ok := lru.Get("key1")
	if ok {
		t.Error("expected ok to be false, got true")
	}
	if value != nil {
		t.Error("expected value to be nil, got", value)
	}

	err = lru.Put("key1", "value1", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	value, ok = lru.Get("key1")
	if !ok || value != "value1" {
		t.Errorf("expected value1, got %v (ok=%v)", value, ok)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	lru, err := NewLRUAlgorithm(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = lru.Put("key1", "value1", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = lru.Put("key2", "value2", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Refresh key1 so key2 becomes the LRU entry.
	lru.Get("key1")

	// The cost is validated but never biases LRU eviction.
	err = lru.Put("key3", "value3", 100.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, ok := lru.Get("key2"); ok {
		t.Error("expected key2 to be evicted")
	}
	if _, ok := lru.Get("key1"); !ok {
		t.Error("expected key1 to survive")
	}
	if lru.Len() != 2 {
		t.Error("expected length to be 2, got", lru.Len())
	}
}

func TestLRU_NegativeCost(t *testing.T) {
	lru, err := NewLRUAlgorithm(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = lru.Put("key1", "value1", -1.0)
	if !errors.Is(err, sentinel.ErrInvalidCost) {
		t.Errorf("expected ErrInvalidCost, got %v", err)
	}

	if lru.Len() != 0 {
		t.Error("expected length to be 0, got", lru.Len())
	}
}

func TestLRU_CapacityZero(t *testing.T) {
	lru, err := NewLRUAlgorithm(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range 5 {
		err = lru.Put(fmt.Sprintf("key%d", i), "value", 1.0)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if lru.Len() != 0 {
		t.Error("expected length to be 0, got", lru.Len())
	}
}

func TestLRU_EvictDelete(t *testing.T) {
	lru, err := NewLRUAlgorithm(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = lru.Put("key1", "value1", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = lru.Put("key2", "value2", 1.0)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	key, ok := lru.Evict()
	if !ok || key != "key1" {
		t.Errorf("expected key1 to be evicted, got %q (ok=%v)", key, ok)
	}

	lru.Delete("key2")

	if lru.Len() != 0 {
		t.Error("expected length to be 0, got", lru.Len())
	}

	if _, ok = lru.Evict(); ok {
		t.Error("expected no victim in an empty cache")
	}
}
