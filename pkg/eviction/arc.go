package eviction

import (
	"sync"

	"github.com/hyp3rd/factorcache/internal/sentinel"
)

// arcEntry is a resident entry: it owns the value while it sits in T1 or T2.
type arcEntry[K comparable, V any] struct {
	key         K
	value       V
	cost        float64
	accessCount uint64
	lastAccess  int64
	prev        *arcEntry[K, V]
	next        *arcEntry[K, V]
}

// ghostEntry records an evicted key in B1 or B2. No value, no cost.
type ghostEntry[K comparable] struct {
	key  K
	prev *ghostEntry[K]
	next *ghostEntry[K]
}

type arcList[K comparable, V any] struct {
	head *arcEntry[K, V]
	tail *arcEntry[K, V]
	len  int
}

func (l *arcList[K, V]) pushFront(node *arcEntry[K, V]) {
	node.prev = nil

	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}

	l.head = node
	if l.tail == nil {
		l.tail = node
	}

	l.len++
}

func (l *arcList[K, V]) remove(node *arcEntry[K, V]) {
	switch {
	case l.head == l.tail:
		l.head = nil
		l.tail = nil

	case node == l.head:
		l.head = node.next
		l.head.prev = nil

	case node == l.tail:
		l.tail = node.prev
		l.tail.next = nil

	default:
		node.prev.next = node.next
		node.next.prev = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}

type ghostList[K comparable] struct {
	head *ghostEntry[K]
	tail *ghostEntry[K]
	len  int
}

func (l *ghostList[K]) pushFront(node *ghostEntry[K]) {
	node.prev = nil

	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}

	l.head = node
	if l.tail == nil {
		l.tail = node
	}

	l.len++
}

func (l *ghostList[K]) remove(node *ghostEntry[K]) {
	switch {
	case l.head == l.tail:
		l.head = nil
		l.tail = nil

	case node == l.head:
		l.head = node.next
		l.head.prev = nil

	case node == l.tail:
		l.tail = node.prev
		l.tail.next = nil

	default:
		node.prev.next = node.next
		node.next.prev = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}

func (l *ghostList[K]) removeTail() *ghostEntry[K] {
	if l.tail == nil {
		return nil
	}

	t := l.tail
	l.remove(t)

	return t
}

// CostAwareARC implements the Adaptive Replacement Cache (resident T1/T2 and
// ghost B1/B2) with a cost-aware victim selection: the list to evict from is
// chosen by the classic ARC recency/frequency balance, but the entry evicted
// within that list is the one with the lowest
//
//	priority = min(accessCount/referenceMax, 1) * cost * 1/(1+age)
//
// where age is measured on a logical clock that advances once per operation.
// Victim selection is an O(list size) scan per eviction, not O(1) as in
// classic ARC; this is the accepted cost of the cost-aware extension.
//
// All four lists and the partition target p live behind a single mutex held
// for the duration of each call: the bookkeeping is not decomposable into
// independently lockable sub-operations.
type CostAwareARC[K comparable, V any] struct {
	mutex    sync.Mutex
	capacity int
	p        int // target size for T1
	tick     int64
	tuning   Tuning

	// resident lists
	t1 arcList[K, V]
	t2 arcList[K, V]

	// ghost lists
	b1 ghostList[K]
	b2 ghostList[K]

	// indexes
	t1Idx map[K]*arcEntry[K, V]
	t2Idx map[K]*arcEntry[K, V]
	b1Idx map[K]*ghostEntry[K]
	b2Idx map[K]*ghostEntry[K]

	length int // |T1| + |T2|

	hits      uint64
	misses    uint64
	evictions uint64
	ghostHits uint64
}

// NewCostAwareARC creates a new cost-aware ARC with the given capacity.
// A capacity of zero yields a cache where every Put is a no-op and every Get misses.
func NewCostAwareARC[K comparable, V any](capacity int, opts ...Option) (*CostAwareARC[K, V], error) {
	if capacity < 0 {
		return nil, sentinel.ErrInvalidCapacity
	}

	return &CostAwareARC[K, V]{
		capacity: capacity,
		p:        0,
		tuning:   defaultTuning(opts...),
		t1Idx:    make(map[K]*arcEntry[K, V], capacity),
		t2Idx:    make(map[K]*arcEntry[K, V], capacity),
		b1Idx:    make(map[K]*ghostEntry[K], capacity),
		b2Idx:    make(map[K]*ghostEntry[K], capacity),
	}, nil
}

// Get returns the value for key and updates recency/frequency state.
// A first hit moves the entry from T1 to T2; later hits refresh its MRU
// position within T2. Ghost lists are never consulted and no eviction occurs.
func (a *CostAwareARC[K, V]) Get(key K) (V, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.tick++

	if node, ok := a.t1Idx[key]; ok {
		// one repeat access is enough to call it frequent: move to T2
		a.t1.remove(node)
		delete(a.t1Idx, key)

		node.accessCount++
		node.lastAccess = a.tick

		a.t2.pushFront(node)
		a.t2Idx[key] = node

		a.hits++

		return node.value, true
	}

	if node, ok := a.t2Idx[key]; ok {
		node.accessCount++
		node.lastAccess = a.tick

		a.t2.remove(node)
		a.t2.pushFront(node)

		a.hits++

		return node.value, true
	}

	a.misses++

	var zero V

	return zero, false
}

// Put inserts or updates a key according to the cost-aware ARC rules.
// The cost is the caller's estimate of how expensive the value is to
// recompute; a negative cost is rejected before any state is touched.
func (a *CostAwareARC[K, V]) Put(key K, value V, cost float64) error {
	if cost < 0 {
		return sentinel.ErrInvalidCost
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.capacity == 0 {
		return nil
	}

	a.tick++

	if a.updateIfResident(key, value, cost) {
		return nil
	}

	if a.promoteFromGhost(key, value, cost) {
		return nil
	}

	a.insertNew(key, value, cost)

	return nil
}

// Delete removes key from the cache (resident or ghost).
func (a *CostAwareARC[K, V]) Delete(key K) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if node, ok := a.t1Idx[key]; ok {
		a.t1.remove(node)
		delete(a.t1Idx, key)

		a.length--

		return
	}

	if node, ok := a.t2Idx[key]; ok {
		a.t2.remove(node)
		delete(a.t2Idx, key)

		a.length--

		return
	}

	if ghost, ok := a.b1Idx[key]; ok {
		a.b1.remove(ghost)
		delete(a.b1Idx, key)

		return
	}

	if ghost, ok := a.b2Idx[key]; ok {
		a.b2.remove(ghost)
		delete(a.b2Idx, key)

		return
	}
}

// Evict removes one victim according to the cost-aware replace step and
// returns its key.
func (a *CostAwareARC[K, V]) Evict() (K, bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	var zero K

	if a.capacity == 0 || a.length == 0 {
		return zero, false
	}

	a.tick++

	return a.replace(false)
}

// Len returns the number of resident entries.
func (a *CostAwareARC[K, V]) Len() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.length
}

// Capacity returns the configured capacity.
func (a *CostAwareARC[K, V]) Capacity() int {
	return a.capacity
}

// Stats returns a snapshot of the counters and the four-list state.
func (a *CostAwareARC[K, V]) Stats() Stats {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return Stats{
		Hits:      a.hits,
		Misses:    a.misses,
		Evictions: a.evictions,
		GhostHits: a.ghostHits,
		T1Len:     a.t1.len,
		T2Len:     a.t2.len,
		B1Len:     a.b1.len,
		B2Len:     a.b2.len,
		P:         a.p,
	}
}

// updateIfResident handles a redundant Put for a key already in T1 or T2:
// value and cost are replaced in place, list membership stays untouched and
// no eviction is triggered.
func (a *CostAwareARC[K, V]) updateIfResident(key K, value V, cost float64) bool {
	if node, ok := a.t1Idx[key]; ok {
		node.value = value
		node.cost = cost

		return true
	}

	if node, ok := a.t2Idx[key]; ok {
		node.value = value
		node.cost = cost

		return true
	}

	return false
}

// promoteFromGhost processes B1/B2 hits: adapt p, make room, and insert the
// key directly into T2. Repeated demand for a recently evicted key is itself
// evidence of frequency.
func (a *CostAwareARC[K, V]) promoteFromGhost(key K, value V, cost float64) bool {
	if ghost, ok := a.b1Idx[key]; ok {
		// the recency partition proved too small
		a.p = min(a.p+max(a.b2.len/a.b1.len, 1), a.capacity)

		if a.length >= a.capacity {
			a.replace(true)
		}

		a.b1.remove(ghost)
		delete(a.b1Idx, key)

		a.insertT2(key, value, cost)
		a.ghostHits++

		return true
	}

	if ghost, ok := a.b2Idx[key]; ok {
		// the frequency partition proved too small
		a.p = max(a.p-max(a.b1.len/a.b2.len, 1), 0)

		if a.length >= a.capacity {
			a.replace(false)
		}

		a.b2.remove(ghost)
		delete(a.b2Idx, key)

		a.insertT2(key, value, cost)
		a.ghostHits++

		return true
	}

	return false
}

// insertNew handles a key unseen in all four lists: trim history, make room,
// and insert into T1.
func (a *CostAwareARC[K, V]) insertNew(key K, value V, cost float64) {
	l1 := a.t1.len + a.b1.len
	total := l1 + a.t2.len + a.b2.len

	switch {
	case l1 >= a.capacity && a.t1.len < a.capacity:
		// recency history is full: retire its oldest ghost, then free a slot
		a.dropB1Tail()

		if a.length >= a.capacity {
			a.replace(true)
		}

	case l1 >= a.capacity:
		// T1 occupies the whole cache: demote its LRU resident straight into B1.
		// B1 is only non-empty here after explicit deletes; trim it first so the
		// demoted key keeps the history within bounds.
		if a.b1.len > 0 {
			a.dropB1Tail()
		} else if total >= 2*a.capacity {
			a.dropB2Tail()
		}

		a.demoteT1Tail()

	default:
		if total >= a.capacity {
			if total >= 2*a.capacity {
				a.dropB2Tail()
			}

			if a.length >= a.capacity {
				a.replace(false)
			}
		}
	}

	node := &arcEntry[K, V]{key: key, value: value, cost: cost, accessCount: 1, lastAccess: a.tick}
	a.t1.pushFront(node)

	a.t1Idx[key] = node
	a.length++
}

// insertT2 places a fresh entry at the MRU end of T2.
func (a *CostAwareARC[K, V]) insertT2(key K, value V, cost float64) {
	node := &arcEntry[K, V]{key: key, value: value, cost: cost, accessCount: 1, lastAccess: a.tick}
	a.t2.pushFront(node)

	a.t2Idx[key] = node
	a.length++
}

// replace evicts one resident entry and records its key in the matching ghost
// list. The list is chosen by the classic ARC balance rule (evict from T1 if
// |T1| > p, or if |T1| == p and the trigger came from B1); the victim within
// the chosen list is the lowest-priority entry, found by a linear scan.
func (a *CostAwareARC[K, V]) replace(fromB1 bool) (K, bool) {
	fromT1 := a.t1.len > 0 && (a.t1.len > a.p || (a.t1.len == a.p && fromB1))
	if !fromT1 && a.t2.len == 0 {
		fromT1 = a.t1.len > 0
	}

	var zero K

	if fromT1 {
		victim := a.lowestPriority(&a.t1)
		if victim == nil {
			return zero, false
		}

		a.evictEntry(&a.t1, a.t1Idx, &a.b1, a.b1Idx, victim)

		return victim.key, true
	}

	victim := a.lowestPriority(&a.t2)
	if victim == nil {
		return zero, false
	}

	a.evictEntry(&a.t2, a.t2Idx, &a.b2, a.b2Idx, victim)

	return victim.key, true
}

// evictEntry drops the victim's payload and moves its key to the ghost list.
func (a *CostAwareARC[K, V]) evictEntry(
	residents *arcList[K, V],
	residentIdx map[K]*arcEntry[K, V],
	ghosts *ghostList[K],
	ghostIdx map[K]*ghostEntry[K],
	victim *arcEntry[K, V],
) {
	residents.remove(victim)
	delete(residentIdx, victim.key)

	var zero V

	victim.value = zero // payload is dropped the moment the entry leaves T1/T2

	ghost := &ghostEntry[K]{key: victim.key}
	ghosts.pushFront(ghost)
	ghostIdx[victim.key] = ghost

	a.length--
	a.evictions++
}

// lowestPriority scans the whole list for the entry with the lowest priority
// score. Tail-to-head is LRU-to-MRU order, so with a strict comparison the
// oldest entry wins ties.
func (a *CostAwareARC[K, V]) lowestPriority(l *arcList[K, V]) *arcEntry[K, V] {
	victim := l.tail
	if victim == nil {
		return nil
	}

	best := a.priority(victim)

	for node := victim.prev; node != nil; node = node.prev {
		if score := a.priority(node); score < best {
			best = score
			victim = node
		}
	}

	return victim
}

// priority computes the eviction score: normalized access frequency, weighted
// by compute cost, decayed by age on the logical clock. Lower scores are
// evicted first.
func (a *CostAwareARC[K, V]) priority(node *arcEntry[K, V]) float64 {
	freq := min(float64(node.accessCount)/float64(a.tuning.ReferenceMaxAccessCount), 1.0)

	age := float64(a.tick-node.lastAccess) / float64(a.tuning.DecayUnit)
	if age < 0 {
		age = 0
	}

	return freq * node.cost * (1 / (1 + age))
}

func (a *CostAwareARC[K, V]) dropB1Tail() {
	if tail := a.b1.removeTail(); tail != nil {
		delete(a.b1Idx, tail.key)
	}
}

func (a *CostAwareARC[K, V]) dropB2Tail() {
	if tail := a.b2.removeTail(); tail != nil {
		delete(a.b2Idx, tail.key)
	}
}

// demoteT1Tail moves the LRU resident of T1 into B1 without a priority scan.
func (a *CostAwareARC[K, V]) demoteT1Tail() {
	tail := a.t1.tail
	if tail == nil {
		return
	}

	a.evictEntry(&a.t1, a.t1Idx, &a.b1, a.b1Idx, tail)
}
