package mesh

// slot holds one entity record plus the generation counter that guards it.
// A slot is reused after removal, but only under a new generation, so keys
// issued for the previous occupant no longer resolve.
type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena is a generational slab allocator for one entity kind.
// Lookups are O(1) and key-checked: a ref resolves only if its index, its
// generation, and its mesh stamp all match. The zero generation is never
// issued, so the zero ref can serve as "no entity".
type arena[T any] struct {
	stamp uint32
	slots []slot[T]
	free  []uint32
	count int
}

// insert stores val and returns its ref. Freed slots are reused first.
func (a *arena[T]) insert(val T) ref {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.live = true
		s.val = val
		return ref{index: idx, gen: s.gen, stamp: a.stamp}
	}
	a.slots = append(a.slots, slot[T]{gen: 1, live: true, val: val})
	return ref{index: uint32(len(a.slots) - 1), gen: 1, stamp: a.stamp}
}

// get resolves r to the stored record, or nil if r is nil, stale, foreign,
// or out of range.
func (a *arena[T]) get(r ref) *T {
	if r.stamp != a.stamp || int(r.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[r.index]
	if !s.live || s.gen != r.gen {
		return nil
	}
	return &s.val
}

// remove invalidates r and recycles its slot. Reports whether r was live.
// The generation bump makes every outstanding copy of r stale at once.
func (a *arena[T]) remove(r ref) bool {
	if a.get(r) == nil {
		return false
	}
	s := &a.slots[r.index]
	s.live = false
	s.gen++
	var zero T
	s.val = zero
	a.free = append(a.free, r.index)
	a.count--
	return true
}

// len returns the number of live records.
func (a *arena[T]) len() int { return a.count }

// each calls fn for every live record in slot order until fn returns false.
func (a *arena[T]) each(fn func(ref, *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		if !fn(ref{index: uint32(i), gen: s.gen, stamp: a.stamp}, &s.val) {
			return
		}
	}
}
