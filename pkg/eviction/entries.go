package eviction

import "fmt"

// EntryInfo is a read-only snapshot of a resident entry's metadata, used by
// management introspection. The payload is deliberately absent.
type EntryInfo struct {
	Key         string  `json:"key"`
	List        string  `json:"list"`
	AccessCount uint64  `json:"accessCount"`
	LastAccess  int64   `json:"lastAccess"`
	ComputeCost float64 `json:"computeCost"`
}

// IEntryLister is implemented by algorithms that can report resident entry metadata.
type IEntryLister interface {
	Entries() []EntryInfo
}

// Entries reports the resident entries of T1 and T2, MRU first within each list.
func (a *CostAwareARC[K, V]) Entries() []EntryInfo {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	infos := make([]EntryInfo, 0, a.length)

	for node := a.t1.head; node != nil; node = node.next {
		infos = append(infos, EntryInfo{
			Key:         fmt.Sprintf("%v", node.key),
			List:        "t1",
			AccessCount: node.accessCount,
			LastAccess:  node.lastAccess,
			ComputeCost: node.cost,
		})
	}

	for node := a.t2.head; node != nil; node = node.next {
		infos = append(infos, EntryInfo{
			Key:         fmt.Sprintf("%v", node.key),
			List:        "t2",
			AccessCount: node.accessCount,
			LastAccess:  node.lastAccess,
			ComputeCost: node.cost,
		})
	}

	return infos
}
