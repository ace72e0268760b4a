package eviction

import (
	"sync"

	"github.com/hyp3rd/factorcache/internal/sentinel"
)

// LRUCacheItem represents an item in the LRU cache.
type LRUCacheItem struct {
	Key   string
	Value any
	prev  *LRUCacheItem
	next  *LRUCacheItem
}

// lruItemPool is a pool of LRUCacheItem values for memory reuse.
var lruItemPool = sync.Pool{
	New: func() any {
		return &LRUCacheItem{}
	},
}

// LRU is the cost-oblivious baseline: strict least-recently-used eviction.
// It accepts the same Put signature as the cost-aware algorithms so backtests
// can swap policies without touching call sites; the cost is validated and
// then ignored.
type LRU struct {
	capacity int                      // maximum number of items in the cache
	items    map[string]*LRUCacheItem // items in the cache
	head     *LRUCacheItem            // head of the linked list (MRU)
	tail     *LRUCacheItem            // tail of the linked list (LRU)
	mutex    sync.Mutex               // protects all LRU operations
}

// NewLRUAlgorithm creates a new LRU cache with the given capacity.
func NewLRUAlgorithm(capacity int, _ ...Option) (*LRU, error) {
	if capacity < 0 {
		return nil, sentinel.ErrInvalidCapacity
	}

	return &LRU{
		capacity: capacity,
		items:    make(map[string]*LRUCacheItem, capacity),
	}, nil
}

// Get retrieves the value for the given key and refreshes its recency.
func (lru *LRU) Get(key string) (any, bool) {
	lru.mutex.Lock()
	defer lru.mutex.Unlock()

	item, ok := lru.items[key]
	if !ok {
		return nil, false
	}

	lru.moveToFront(item)

	return item.Value, true
}

// Put sets the value for the given key. If the cache is full, the least
// recently used item is evicted first.
func (lru *LRU) Put(key string, value any, cost float64) error {
	if cost < 0 {
		return sentinel.ErrInvalidCost
	}

	lru.mutex.Lock()
	defer lru.mutex.Unlock()

	if lru.capacity == 0 {
		return nil
	}

	item, ok := lru.items[key]
	if ok {
		item.Value = value
		lru.moveToFront(item)

		return nil
	}

	if len(lru.items) >= lru.capacity {
		tail := lru.tail
		lru.removeFromList(tail)
		delete(lru.items, tail.Key)

		tail.Value = nil
		lruItemPool.Put(tail)
	}

	item, ok = lruItemPool.Get().(*LRUCacheItem)
	if !ok {
		item = &LRUCacheItem{}
	}

	item.Key = key
	item.Value = value

	lru.items[key] = item
	lru.addToFront(item)

	return nil
}

// Evict removes the least recently used item from the cache and returns its key.
func (lru *LRU) Evict() (string, bool) {
	lru.mutex.Lock()
	defer lru.mutex.Unlock()

	if lru.tail == nil {
		return "", false
	}

	tail := lru.tail
	lru.removeFromList(tail)
	delete(lru.items, tail.Key)

	key := tail.Key

	tail.Value = nil
	lruItemPool.Put(tail)

	return key, true
}

// Delete removes the given key from the cache.
func (lru *LRU) Delete(key string) {
	lru.mutex.Lock()
	defer lru.mutex.Unlock()

	item, ok := lru.items[key]
	if !ok {
		return
	}

	lru.removeFromList(item)
	delete(lru.items, key)

	item.Value = nil
	lruItemPool.Put(item)
}

// Len returns the number of items in the cache.
func (lru *LRU) Len() int {
	lru.mutex.Lock()
	defer lru.mutex.Unlock()

	return len(lru.items)
}

// moveToFront moves the given item to the front of the list.
func (lru *LRU) moveToFront(item *LRUCacheItem) {
	if item == lru.head {
		return
	}

	lru.removeFromList(item)
	lru.addToFront(item)
}

// removeFromList removes the given item from the list.
func (lru *LRU) removeFromList(item *LRUCacheItem) {
	if item == lru.head {
		lru.head = item.next
	} else {
		item.prev.next = item.next
	}

	if item == lru.tail {
		lru.tail = item.prev
	} else {
		item.next.prev = item.prev
	}

	item.prev = nil
	item.next = nil
}

// addToFront adds the given item to the front of the list.
func (lru *LRU) addToFront(item *LRUCacheItem) {
	if lru.head == nil {
		lru.head = item
		lru.tail = item

		return
	}

	item.next = lru.head
	item.prev = nil
	lru.head.prev = item
	lru.head = item
}
