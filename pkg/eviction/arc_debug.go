package eviction

import "fmt"

// verify walks the whole structure and checks every invariant the cost-aware
// ARC promises. Violations are programming errors, never runtime conditions,
// so this is test support only and deliberately unexported.
func (a *CostAwareARC[K, V]) verify() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := a.verifyLists(); err != nil {
		return err
	}

	if a.length != a.t1.len+a.t2.len {
		return fmt.Errorf("length %d != |T1|+|T2| %d", a.length, a.t1.len+a.t2.len)
	}

	if a.length > a.capacity {
		return fmt.Errorf("resident count %d exceeds capacity %d", a.length, a.capacity)
	}

	total := a.t1.len + a.t2.len + a.b1.len + a.b2.len
	if total > 2*a.capacity {
		return fmt.Errorf("four-list total %d exceeds 2*capacity %d", total, 2*a.capacity)
	}

	if a.p < 0 || a.p > a.capacity {
		return fmt.Errorf("p %d out of [0, %d]", a.p, a.capacity)
	}

	return a.verifyDisjoint()
}

// verifyLists checks that each list matches its index map.
func (a *CostAwareARC[K, V]) verifyLists() error {
	for name, check := range map[string]struct {
		listLen int
		idxLen  int
	}{
		"T1": {a.countResident(&a.t1), len(a.t1Idx)},
		"T2": {a.countResident(&a.t2), len(a.t2Idx)},
		"B1": {a.countGhost(&a.b1), len(a.b1Idx)},
		"B2": {a.countGhost(&a.b2), len(a.b2Idx)},
	} {
		if check.listLen != check.idxLen {
			return fmt.Errorf("%s list length %d != index size %d", name, check.listLen, check.idxLen)
		}
	}

	return nil
}

// verifyDisjoint checks that no key is a member of more than one list.
func (a *CostAwareARC[K, V]) verifyDisjoint() error {
	seen := make(map[K]string, a.length+a.b1.len+a.b2.len)

	record := func(key K, list string) error {
		if prior, ok := seen[key]; ok {
			return fmt.Errorf("key %v in both %s and %s", key, prior, list)
		}

		seen[key] = list

		return nil
	}

	for key := range a.t1Idx {
		if err := record(key, "T1"); err != nil {
			return err
		}
	}

	for key := range a.t2Idx {
		if err := record(key, "T2"); err != nil {
			return err
		}
	}

	for key := range a.b1Idx {
		if err := record(key, "B1"); err != nil {
			return err
		}
	}

	for key := range a.b2Idx {
		if err := record(key, "B2"); err != nil {
			return err
		}
	}

	return nil
}

func (a *CostAwareARC[K, V]) countResident(l *arcList[K, V]) int {
	count := 0
	for node := l.head; node != nil; node = node.next {
		count++
		if count > 2*a.capacity+1 {
			break // cycle guard
		}
	}

	if count != l.len {
		return -1
	}

	return count
}

func (a *CostAwareARC[K, V]) countGhost(l *ghostList[K]) int {
	count := 0
	for node := l.head; node != nil; node = node.next {
		count++
		if count > 2*a.capacity+1 {
			break // cycle guard
		}
	}

	if count != l.len {
		return -1
	}

	return count
}
