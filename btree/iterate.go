package btree

// Iterator steps bidirectionally over the leaves of a tree. It owns a
// long-lived path, caches the current leaf's live count and a copy of
// the current entry, and tracks two flags: valid (the cached entry is
// meaningful) and ended (a forward step ran past the last leaf).
// Stepping is amortized O(1); crossing a leaf boundary costs O(depth).
//
// Iterators are invalidated by any structural change of the tree. The
// detection is best-effort through the version snapshot taken by the
// path: a stepping call on a stale iterator returns false and records
// ErrIteratorInvalid.
type Iterator[K, V any] struct {
	tree     *Tree[K, V]
	path     *path[K, V]
	leafN    int // live count of the current leaf
	key      K   // cached copy of the current entry
	val      V
	valid    bool
	ended    bool
	released bool
	err      error
}

// Begin returns an iterator positioned before the first entry; the
// first Next delivers the smallest key.
func (t *Tree[K, V]) Begin() *Iterator[K, V] {
	it := &Iterator[K, V]{tree: t, path: t.paths.rent(t.depth+1, t.version)}
	it.resetPartial(true)
	return it
}

// End returns an iterator positioned after the last entry; the first
// Prev delivers the largest key.
func (t *Tree[K, V]) End() *Iterator[K, V] {
	it := &Iterator[K, V]{tree: t, path: t.paths.rent(t.depth+1, t.version)}
	it.resetPartial(false)
	return it
}

// FindBound returns an iterator positioned at the first entry with key
// equal-or-greater (upper=false) respectively strictly greater
// (upper=true) than key, or past-the-end when no such entry exists.
func (t *Tree[K, V]) FindBound(key K, upper bool) *Iterator[K, V] {
	it := &Iterator[K, V]{tree: t, path: t.paths.rent(t.depth+1, t.version)}
	_, slot := t.descend(it.path, key, upper)
	it.leafN = it.path.steps[t.depth].link.n
	if slot >= it.leafN && !it.climb(true) {
		it.path.steps[t.depth].slot = it.leafN - 1
		it.ended = true
		return it
	}
	it.load()
	return it
}

// resetPartial walks the tree taking the left-most (respectively
// right-most) slot at every level and caches the destination leaf's
// live count.
func (it *Iterator[K, V]) resetPartial(toBeginning bool) {
	t := it.tree
	link := &t.root
	for level := 0; level < t.depth; level++ {
		inner := link.node.(*innerNode[K, V])
		slot := 0
		if !toBeginning {
			slot = link.n - 1
		}
		it.path.steps[level] = pathStep[K, V]{link: link, slot: slot}
		link = &inner.slots[slot].child
	}
	it.leafN = link.n
	slot := 0
	if !toBeginning {
		slot = link.n - 1
	}
	it.path.steps[t.depth] = pathStep[K, V]{link: link, slot: slot}
	it.valid = false
	it.ended = !toBeginning
}

// Next advances to the following entry and reports whether one exists.
// A false return with a nil Err means the iterator ran past the end.
func (it *Iterator[K, V]) Next() bool {
	if !it.live() {
		return false
	}
	if it.ended {
		return false
	}
	step := &it.path.steps[it.tree.depth]
	if it.valid {
		step.slot++
	}
	if step.slot >= it.leafN {
		if !it.climb(true) {
			// Already on the last leaf: park after the last entry so a
			// later Prev picks it up again.
			step.slot = it.leafN - 1
			it.valid = false
			it.ended = true
			return false
		}
	}
	it.load()
	return true
}

// Prev steps back to the preceding entry and reports whether one
// exists. An iterator positioned before the first entry refuses to
// move back.
func (it *Iterator[K, V]) Prev() bool {
	if !it.live() {
		return false
	}
	if !it.valid && !it.ended {
		return false
	}
	step := &it.path.steps[it.tree.depth]
	if it.valid {
		step.slot--
	}
	it.ended = false
	if step.slot < 0 {
		if !it.climb(false) {
			// Already on the first leaf: park before the first entry so
			// a later Next picks it up again.
			step.slot = 0
			it.valid = false
			return false
		}
	}
	it.load()
	return true
}

// Current returns a copy of the entry under the iterator.
func (it *Iterator[K, V]) Current() (K, V, error) {
	var zeroK K
	var zeroV V
	if it.released {
		return zeroK, zeroV, ErrIteratorReleased
	}
	if it.path.version != it.tree.version || !it.valid {
		return zeroK, zeroV, ErrIteratorInvalid
	}
	return it.key, it.val, nil
}

// Valid reports whether the iterator is positioned on an entry that
// Current would deliver.
func (it *Iterator[K, V]) Valid() bool {
	return !it.released && it.err == nil && it.valid &&
		it.path.version == it.tree.version
}

// Err returns the sticky error recorded by a refused stepping call.
func (it *Iterator[K, V]) Err() error { return it.err }

// Reset repositions the iterator before the first (respectively after
// the last) entry and clears any sticky error. The path is re-rented
// when the tree's depth changed since the iterator was created.
func (it *Iterator[K, V]) Reset(toBeginning bool) {
	if it.released {
		return
	}
	t := it.tree
	if len(it.path.steps) != t.depth+1 {
		t.paths.release(it.path)
		it.path = t.paths.rent(t.depth+1, t.version)
	} else {
		it.path.version = t.version
	}
	it.err = nil
	it.resetPartial(toBeginning)
}

// Release returns the iterator's path to the tree's pool. The iterator
// must not be used afterwards.
func (it *Iterator[K, V]) Release() {
	if it.released {
		return
	}
	it.tree.paths.release(it.path)
	it.path = nil
	it.released = true
}

func (it *Iterator[K, V]) live() bool {
	if it.err != nil {
		return false
	}
	if it.released {
		it.err = ErrIteratorReleased
		return false
	}
	if it.path.version != it.tree.version {
		it.err = ErrIteratorInvalid
		return false
	}
	return true
}

// climb walks the path upward until a level has a further sibling in
// the stepping direction, then re-descends into it along the outermost
// branch. Returns false when no such level exists.
func (it *Iterator[K, V]) climb(forward bool) bool {
	t := it.tree
	for level := t.depth - 1; level >= 0; level-- {
		step := &it.path.steps[level]
		if forward && step.slot+1 < step.link.n {
			step.slot++
			it.refill(level, forward)
			return true
		}
		if !forward && step.slot > 0 {
			step.slot--
			it.refill(level, forward)
			return true
		}
	}
	return false
}

// refill re-walks the path below level, taking the left-most branch
// when stepping forward and the right-most when stepping backward.
func (it *Iterator[K, V]) refill(level int, forward bool) {
	t := it.tree
	step := it.path.steps[level]
	inner := step.link.node.(*innerNode[K, V])
	link := &inner.slots[step.slot].child
	for l := level + 1; l < t.depth; l++ {
		in := link.node.(*innerNode[K, V])
		slot := 0
		if !forward {
			slot = link.n - 1
		}
		it.path.steps[l] = pathStep[K, V]{link: link, slot: slot}
		link = &in.slots[slot].child
	}
	it.leafN = link.n
	slot := 0
	if !forward {
		slot = link.n - 1
	}
	it.path.steps[t.depth] = pathStep[K, V]{link: link, slot: slot}
}

func (it *Iterator[K, V]) load() {
	step := it.path.steps[it.tree.depth]
	assert(step.slot >= 0 && step.slot < it.leafN, "iterator slot outside the live range")
	leaf := step.link.node.(*leafNode[K, V])
	it.key = leaf.slots[step.slot].key
	it.val = leaf.slots[step.slot].val
	it.valid = true
	it.ended = false
}
