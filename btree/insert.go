package btree

// Insertion. A public insert descends to the lower-bound leaf slot and
// places the entry there. A full node splits around half = (len-1)/2:
// the left node keeps half+1 live slots, the right sibling takes the
// rest, and one pivot key bubbles up into the parent. Splits may cascade up
// the recorded path; a split of the root grows the tree by one level.

// Insert adds an entry. Equal keys are admitted; the new entry lands
// left of any equal run.
func (t *Tree[K, V]) Insert(key K, val V) {
	p := t.paths.rent(t.depth+1, t.version)
	defer t.paths.release(p)
	t.descend(p, key, false)
	t.insertAtPath(p, key, val)
}

// InsertUnique adds an entry unless an equal key already exists, and
// reports whether the entry was added.
func (t *Tree[K, V]) InsertUnique(key K, val V) bool {
	p := t.paths.rent(t.depth+1, t.version)
	defer t.paths.release(p)
	link, slot := t.descend(p, key, false)
	leaf := link.node.(*leafNode[K, V])
	if slot < link.n && t.cmp(leaf.slots[slot].key, key) == 0 {
		return false
	}
	t.insertAtPath(p, key, val)
	return true
}

// insertAtPath places the entry at the leaf position recorded in p and
// bubbles splits toward the root.
func (t *Tree[K, V]) insertAtPath(p *path[K, V], key K, val V) {
	step := p.steps[t.depth]
	pivot, right, split := t.leafInsert(step.link, step.slot, key, val)
	for level := t.depth - 1; split && level >= 0; level-- {
		step = p.steps[level]
		pivot, right, split = t.innerInsert(step.link, step.slot+1, pivot, right)
	}
	if split {
		t.growRoot(pivot, right)
	}
	t.count++
	t.version++
}

// growRoot allocates a new interior root over the old root and the
// bubbled-up right sibling.
func (t *Tree[K, V]) growRoot(pivot K, right childLink[K, V]) {
	root := t.newInner()
	root.slots[0].child = t.root
	root.slots[1] = innerSlot[K, V]{key: pivot, child: right}
	t.root = childLink[K, V]{node: root, n: 2}
	t.depth++
}

// leafInsert places (key, val) at slot i of the linked leaf. When the
// leaf is full it splits; the returned pivot is a copy of the left
// node's last key and the returned link addresses the new right
// sibling.
func (t *Tree[K, V]) leafInsert(link *childLink[K, V], i int, key K, val V) (K, childLink[K, V], bool) {
	leaf := link.node.(*leafNode[K, V])
	n := link.n
	var none childLink[K, V]
	if n < len(leaf.slots) {
		copy(leaf.slots[i+1:n+1], leaf.slots[i:n])
		leaf.slots[i] = leafSlot[K, V]{key: key, val: val}
		link.n = n + 1
		var zero K
		return zero, none, false
	}
	half := (len(leaf.slots) - 1) / 2
	right := t.newLeaf()
	if i <= half {
		copy(right.slots, leaf.slots[half:])
		copy(leaf.slots[i+1:half+1], leaf.slots[i:half])
		leaf.slots[i] = leafSlot[K, V]{key: key, val: val}
	} else {
		copy(right.slots, leaf.slots[half+1:i])
		right.slots[i-(half+1)] = leafSlot[K, V]{key: key, val: val}
		copy(right.slots[i-half:], leaf.slots[i:])
	}
	for j := half + 1; j < len(leaf.slots); j++ {
		leaf.slots[j] = leafSlot[K, V]{}
	}
	link.n = half + 1
	pivot := leaf.slots[half].key
	return pivot, childLink[K, V]{node: right, n: len(leaf.slots) - half}, true
}

// innerInsert places (key, child) at slot i of the linked interior
// node. Bubbled-up pairs always land at slot indices >= 1, so the
// keyless slot 0 never moves. When the node splits, the pivot to
// bubble further is the key that becomes slot 0 of the new right
// sibling; it is blanked there per the keyless-slot-0 convention.
func (t *Tree[K, V]) innerInsert(link *childLink[K, V], i int, key K, child childLink[K, V]) (K, childLink[K, V], bool) {
	assert(i >= 1, "interior insert below slot 1")
	inner := link.node.(*innerNode[K, V])
	n := link.n
	var none childLink[K, V]
	if n < len(inner.slots) {
		copy(inner.slots[i+1:n+1], inner.slots[i:n])
		inner.slots[i] = innerSlot[K, V]{key: key, child: child}
		link.n = n + 1
		var zero K
		return zero, none, false
	}
	half := (len(inner.slots) - 1) / 2
	right := t.newInner()
	if i <= half {
		copy(right.slots, inner.slots[half:])
		copy(inner.slots[i+1:half+1], inner.slots[i:half])
		inner.slots[i] = innerSlot[K, V]{key: key, child: child}
	} else {
		copy(right.slots, inner.slots[half+1:i])
		right.slots[i-(half+1)] = innerSlot[K, V]{key: key, child: child}
		copy(right.slots[i-half:], inner.slots[i:])
	}
	for j := half + 1; j < len(inner.slots); j++ {
		inner.slots[j] = innerSlot[K, V]{}
	}
	link.n = half + 1
	pivot := right.slots[0].key
	var zero K
	right.slots[0].key = zero
	return pivot, childLink[K, V]{node: right, n: len(inner.slots) - half}, true
}
