package btree

// Deletion. Remove walks from the root to the leaf holding the
// left-most equal key, passing same-level neighbor links and the
// anchor pivot keys down with the recursion. The leaf level deletes
// the entry and repairs occupancy at once: simple delete while above
// the minimum, else borrow from a richer neighbor, else merge into the
// sibling. A merge empties the node and bubbles back up as "drop my
// parent slot", which may cascade the same repair at interior levels.
// Deleting down to a single root slot collapses the root.
//
// Interior nodes move pivot keys together with children: on a borrow
// the old anchor pivot is demoted into the receiving node and the key
// stranded on the right node's new slot 0 is promoted into the anchor; on a
// merge the dying anchor pivot is demoted into the merged node. Leaf
// repairs refresh the anchor with a copy of the surviving left node's
// last key instead.

// Remove deletes the left-most entry with an equal key and reports
// whether a deletion occurred.
func (t *Tree[K, V]) Remove(key K) bool {
	if t.depth == 0 {
		// The root leaf is exempt from occupancy minima.
		leaf := t.root.node.(*leafNode[K, V])
		n := t.root.n
		i := t.searchLeaf(leaf, n, key, false)
		if i >= n || t.cmp(leaf.slots[i].key, key) != 0 {
			return false
		}
		copy(leaf.slots[i:n-1], leaf.slots[i+1:n])
		leaf.slots[n-1] = leafSlot[K, V]{}
		t.root.n = n - 1
		t.count--
		t.version++
		return true
	}
	root := t.root.node.(*innerNode[K, V])
	i := t.searchInner(root, t.root.n, key, false)
	nl, nr, nlp, nrp := t.neighborhood(root, t.root.n, i, nil, nil, nil, nil)
	removed, bubble := t.removeRec(&root.slots[i].child, t.depth-1, key, nl, nr, nlp, nrp, i > 0)
	if !removed {
		return false
	}
	if bubble {
		t.innerSimpleDelete(root, &t.root, i)
		if t.root.n == 1 {
			collapsed := root.slots[0].child
			root.slots[0] = innerSlot[K, V]{}
			t.root = collapsed
			t.depth--
		}
	}
	t.count--
	t.version++
	return true
}

// removeRec handles one non-root level of the walk. link addresses the
// current node; level counts the interior levels still below it (0
// means link addresses a leaf). leftN/rightN are the same-level
// neighbor links, leftPivot/rightPivot the anchor keys separating this
// node from them, and leftIsSib tells whether the left neighbor shares
// this node's parent (otherwise the right one does).
func (t *Tree[K, V]) removeRec(
	link *childLink[K, V], level int, key K,
	leftN, rightN *childLink[K, V],
	leftPivot, rightPivot *K,
	leftIsSib bool,
) (removed, bubble bool) {
	if level == 0 {
		leaf := link.node.(*leafNode[K, V])
		i := t.searchLeaf(leaf, link.n, key, false)
		if i >= link.n || t.cmp(leaf.slots[i].key, key) != 0 {
			return false, false
		}
		return true, t.rebalanceLeaf(link, i, leftN, rightN, leftPivot, rightPivot, leftIsSib)
	}
	inner := link.node.(*innerNode[K, V])
	i := t.searchInner(inner, link.n, key, false)
	nl, nr, nlp, nrp := t.neighborhood(inner, link.n, i, leftN, rightN, leftPivot, rightPivot)
	removed, childBubble := t.removeRec(&inner.slots[i].child, level-1, key, nl, nr, nlp, nrp, i > 0)
	if !removed || !childBubble {
		return removed, false
	}
	// The child at slot i merged into its sibling and must be dropped.
	return true, t.rebalanceInner(link, i, leftN, rightN, leftPivot, rightPivot, leftIsSib)
}

// neighborhood derives the next level's neighbor links and anchor keys
// for the child at slot i. A neighbor under the same parent is the
// adjacent slot; at the extremes it is the outermost child of this
// level's own neighbor, and the anchor pivot is inherited.
func (t *Tree[K, V]) neighborhood(
	inner *innerNode[K, V], n, i int,
	leftN, rightN *childLink[K, V],
	leftPivot, rightPivot *K,
) (nl, nr *childLink[K, V], nlp, nrp *K) {
	if i > 0 {
		nl = &inner.slots[i-1].child
		nlp = &inner.slots[i].key
	} else if leftN != nil {
		ln := leftN.node.(*innerNode[K, V])
		nl = &ln.slots[leftN.n-1].child
		nlp = leftPivot
	}
	if i+1 < n {
		nr = &inner.slots[i+1].child
		nrp = &inner.slots[i+1].key
	} else if rightN != nil {
		rn := rightN.node.(*innerNode[K, V])
		nr = &rn.slots[0].child
		nrp = rightPivot
	}
	return nl, nr, nlp, nrp
}

// rebalanceLeaf deletes slot i of the linked leaf and repairs
// occupancy. Returns true when the leaf merged away and its parent
// slot must be dropped.
func (t *Tree[K, V]) rebalanceLeaf(
	link *childLink[K, V], i int,
	leftN, rightN *childLink[K, V],
	leftPivot, rightPivot *K,
	leftIsSib bool,
) bool {
	leaf := link.node.(*leafNode[K, V])
	n := link.n
	min := t.minLeafSlots()
	if n > min {
		copy(leaf.slots[i:n-1], leaf.slots[i+1:n])
		leaf.slots[n-1] = leafSlot[K, V]{}
		link.n = n - 1
		return false
	}
	if leftN != nil && leftN.n > min {
		t.leafBorrowFromLeft(leftN, link, i, leftN.n-min)
		left := leftN.node.(*leafNode[K, V])
		*leftPivot = left.slots[leftN.n-1].key
		return false
	}
	if rightN != nil && rightN.n > min {
		t.leafBorrowFromRight(link, rightN, i, rightN.n-min)
		*rightPivot = leaf.slots[link.n-1].key
		return false
	}
	if leftIsSib {
		t.leafMergeIntoLeft(leftN, link, i)
	} else {
		assert(rightN != nil, "underfull leaf without a sibling")
		t.leafMergeIntoRight(link, rightN, i)
	}
	return true
}

// rebalanceInner drops slot i of the linked interior node and repairs
// occupancy the same way. Returns true when the node merged away.
func (t *Tree[K, V]) rebalanceInner(
	link *childLink[K, V], i int,
	leftN, rightN *childLink[K, V],
	leftPivot, rightPivot *K,
	leftIsSib bool,
) bool {
	inner := link.node.(*innerNode[K, V])
	min := t.minInnerSlots()
	if link.n > min {
		t.innerSimpleDelete(inner, link, i)
		return false
	}
	if leftN != nil && leftN.n > min {
		t.innerBorrowFromLeft(leftN, link, i, leftN.n-min, leftPivot)
		return false
	}
	if rightN != nil && rightN.n > min {
		t.innerBorrowFromRight(link, rightN, i, rightN.n-min, rightPivot)
		return false
	}
	if leftIsSib {
		t.innerMergeIntoLeft(leftN, link, i, *leftPivot)
	} else {
		assert(rightN != nil, "underfull interior node without a sibling")
		t.innerMergeIntoRight(link, rightN, i, *rightPivot)
	}
	return true
}

// innerSimpleDelete shifts the slots after i left by one and blanks the
// vacated tail. Dropping slot 0 moves slot 1 into the keyless head
// position, so its stale key is blanked as well.
func (t *Tree[K, V]) innerSimpleDelete(inner *innerNode[K, V], link *childLink[K, V], i int) {
	n := link.n
	copy(inner.slots[i:n-1], inner.slots[i+1:n])
	inner.slots[n-1] = innerSlot[K, V]{}
	if i == 0 {
		var zero K
		inner.slots[0].key = zero
	}
	link.n = n - 1
}

// leafBorrowFromLeft removes slot del of the right leaf and refills it
// with the left leaf's last s entries.
func (t *Tree[K, V]) leafBorrowFromLeft(left, right *childLink[K, V], del, s int) {
	l := left.node.(*leafNode[K, V])
	r := right.node.(*leafNode[K, V])
	n := right.n
	copy(r.slots[del:n-1], r.slots[del+1:n])
	copy(r.slots[s:s+n-1], r.slots[:n-1])
	copy(r.slots[:s], l.slots[left.n-s:left.n])
	for j := left.n - s; j < left.n; j++ {
		l.slots[j] = leafSlot[K, V]{}
	}
	right.n = n - 1 + s
	left.n -= s
}

// leafBorrowFromRight removes slot del of the left leaf and appends the
// right leaf's first s entries.
func (t *Tree[K, V]) leafBorrowFromRight(left, right *childLink[K, V], del, s int) {
	l := left.node.(*leafNode[K, V])
	r := right.node.(*leafNode[K, V])
	n := left.n
	copy(l.slots[del:n-1], l.slots[del+1:n])
	copy(l.slots[n-1:n-1+s], r.slots[:s])
	copy(r.slots[:right.n-s], r.slots[s:right.n])
	for j := right.n - s; j < right.n; j++ {
		r.slots[j] = leafSlot[K, V]{}
	}
	left.n = n - 1 + s
	right.n -= s
}

// leafMergeIntoLeft moves the right leaf's surviving entries (all but
// slot del) to the end of the left leaf and empties the right leaf.
func (t *Tree[K, V]) leafMergeIntoLeft(left, right *childLink[K, V], del int) {
	l := left.node.(*leafNode[K, V])
	r := right.node.(*leafNode[K, V])
	nl, nr := left.n, right.n
	copy(l.slots[nl:nl+del], r.slots[:del])
	copy(l.slots[nl+del:nl+nr-1], r.slots[del+1:nr])
	for j := 0; j < nr; j++ {
		r.slots[j] = leafSlot[K, V]{}
	}
	left.n = nl + nr - 1
	right.n = 0
}

// leafMergeIntoRight moves the left leaf's surviving entries to the
// head of the right leaf and empties the left leaf.
func (t *Tree[K, V]) leafMergeIntoRight(left, right *childLink[K, V], del int) {
	l := left.node.(*leafNode[K, V])
	r := right.node.(*leafNode[K, V])
	nl, nr := left.n, right.n
	copy(r.slots[nl-1:nl-1+nr], r.slots[:nr])
	copy(r.slots[:del], l.slots[:del])
	copy(r.slots[del:nl-1], l.slots[del+1:nl])
	for j := 0; j < nl; j++ {
		l.slots[j] = leafSlot[K, V]{}
	}
	right.n = nr + nl - 1
	left.n = 0
}

// innerBorrowFromLeft removes slot del of the right node and refills it
// with the left node's last s slots. The anchor pivot is demoted onto
// the right node's former head slot; the first shifted-in key takes its
// place in the anchor and is blanked on the new slot 0.
func (t *Tree[K, V]) innerBorrowFromLeft(left, right *childLink[K, V], del, s int, pivot *K) {
	l := left.node.(*innerNode[K, V])
	r := right.node.(*innerNode[K, V])
	n := right.n
	copy(r.slots[del:n-1], r.slots[del+1:n])
	copy(r.slots[s:s+n-1], r.slots[:n-1])
	r.slots[s].key = *pivot
	copy(r.slots[:s], l.slots[left.n-s:left.n])
	*pivot = r.slots[0].key
	var zero K
	r.slots[0].key = zero
	for j := left.n - s; j < left.n; j++ {
		l.slots[j] = innerSlot[K, V]{}
	}
	right.n = n - 1 + s
	left.n -= s
}

// innerBorrowFromRight removes slot del of the left node and appends
// the right node's first s slots. The anchor pivot is demoted onto the
// right node's former slot 0; the key stranded on the right node's new
// slot 0 is promoted into the anchor and blanked in place.
func (t *Tree[K, V]) innerBorrowFromRight(left, right *childLink[K, V], del, s int, pivot *K) {
	l := left.node.(*innerNode[K, V])
	r := right.node.(*innerNode[K, V])
	n := left.n
	copy(l.slots[del:n-1], l.slots[del+1:n])
	if del == 0 {
		var zero K
		l.slots[0].key = zero
	}
	copy(l.slots[n-1:n-1+s], r.slots[:s])
	l.slots[n-1].key = *pivot
	*pivot = r.slots[s].key
	copy(r.slots[:right.n-s], r.slots[s:right.n])
	var zero K
	r.slots[0].key = zero
	for j := right.n - s; j < right.n; j++ {
		r.slots[j] = innerSlot[K, V]{}
	}
	left.n = n - 1 + s
	right.n -= s
}

// innerMergeIntoLeft moves the right node's surviving slots to the end
// of the left node, keying the first moved slot with the demoted anchor
// pivot, and empties the right node.
func (t *Tree[K, V]) innerMergeIntoLeft(left, right *childLink[K, V], del int, pivot K) {
	l := left.node.(*innerNode[K, V])
	r := right.node.(*innerNode[K, V])
	nl, nr := left.n, right.n
	copy(r.slots[del:nr-1], r.slots[del+1:nr])
	copy(l.slots[nl:nl+nr-1], r.slots[:nr-1])
	l.slots[nl].key = pivot
	for j := 0; j < nr; j++ {
		r.slots[j] = innerSlot[K, V]{}
	}
	left.n = nl + nr - 1
	right.n = 0
}

// innerMergeIntoRight moves the left node's surviving slots to the head
// of the right node, keying the right node's former slot 0 with the
// demoted anchor pivot, and empties the left node.
func (t *Tree[K, V]) innerMergeIntoRight(left, right *childLink[K, V], del int, pivot K) {
	l := left.node.(*innerNode[K, V])
	r := right.node.(*innerNode[K, V])
	nl, nr := left.n, right.n
	copy(l.slots[del:nl-1], l.slots[del+1:nl])
	if del == 0 {
		var zero K
		l.slots[0].key = zero
	}
	copy(r.slots[nl-1:nl-1+nr], r.slots[:nr])
	r.slots[nl-1].key = pivot
	copy(r.slots[:nl-1], l.slots[:nl-1])
	for j := 0; j < nl; j++ {
		l.slots[j] = innerSlot[K, V]{}
	}
	right.n = nr + nl - 1
	left.n = 0
}
