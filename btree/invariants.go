package btree

import (
	"errors"
	"fmt"
)

// ErrTreeInvariant is the base error of the structural checker below.
var ErrTreeInvariant = errors.New("btree: structural invariant violated")

// Check validates the structural tree invariants: uniform leaf depth,
// occupancy bounds, in-node key order, pivot/subtree relations, and
// the entry count. The checker is intentionally strict and meant for
// tests.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrTreeInvariant)
	}
	entries, err := t.checkNode(&t.root, t.depth, true, nil, nil)
	if err != nil {
		return err
	}
	if entries != t.count {
		return fmt.Errorf("%w: leaf entries %d do not match count %d",
			ErrTreeInvariant, entries, t.count)
	}
	return nil
}

// checkNode validates the subtree under link at the given remaining
// level, with optional exclusive lower and inclusive upper key bounds
// inherited from ancestor pivots.
func (t *Tree[K, V]) checkNode(link *childLink[K, V], level int, isRoot bool, lo, hi *K) (int, error) {
	if link.node == nil {
		return 0, fmt.Errorf("%w: nil node link", ErrTreeInvariant)
	}
	if level == 0 {
		leaf, ok := link.node.(*leafNode[K, V])
		if !ok {
			return 0, fmt.Errorf("%w: interior node at leaf depth", ErrTreeInvariant)
		}
		n := link.n
		min := t.minLeafSlots()
		if isRoot {
			min = 0
		}
		if n < min || n > t.maxLeafSlots() {
			return 0, fmt.Errorf("%w: leaf occupancy %d outside [%d, %d]",
				ErrTreeInvariant, n, min, t.maxLeafSlots())
		}
		for i := 0; i < n; i++ {
			if i > 0 && t.cmp(leaf.slots[i-1].key, leaf.slots[i].key) > 0 {
				return 0, fmt.Errorf("%w: leaf keys out of order at slot %d", ErrTreeInvariant, i)
			}
			if lo != nil && t.cmp(leaf.slots[i].key, *lo) <= 0 {
				return 0, fmt.Errorf("%w: leaf key at slot %d not above its pivot", ErrTreeInvariant, i)
			}
			if hi != nil && t.cmp(leaf.slots[i].key, *hi) > 0 {
				return 0, fmt.Errorf("%w: leaf key at slot %d above its pivot", ErrTreeInvariant, i)
			}
		}
		return n, nil
	}
	inner, ok := link.node.(*innerNode[K, V])
	if !ok {
		return 0, fmt.Errorf("%w: leaf node above leaf depth", ErrTreeInvariant)
	}
	n := link.n
	min := t.minInnerSlots()
	if isRoot {
		min = 2
	}
	if n < min || n > t.maxInnerSlots() {
		return 0, fmt.Errorf("%w: interior occupancy %d outside [%d, %d]",
			ErrTreeInvariant, n, min, t.maxInnerSlots())
	}
	for i := 2; i < n; i++ {
		if t.cmp(inner.slots[i-1].key, inner.slots[i].key) > 0 {
			return 0, fmt.Errorf("%w: pivots out of order at slot %d", ErrTreeInvariant, i)
		}
	}
	if lo != nil && t.cmp(inner.slots[1].key, *lo) <= 0 {
		return 0, fmt.Errorf("%w: pivot below the subtree's lower bound", ErrTreeInvariant)
	}
	if hi != nil && t.cmp(inner.slots[n-1].key, *hi) > 0 {
		return 0, fmt.Errorf("%w: pivot above the subtree's upper bound", ErrTreeInvariant)
	}
	total := 0
	for i := 0; i < n; i++ {
		childLo := lo
		if i > 0 {
			childLo = &inner.slots[i].key
		}
		childHi := hi
		if i+1 < n {
			childHi = &inner.slots[i+1].key
		}
		entries, err := t.checkNode(&inner.slots[i].child, level-1, false, childLo, childHi)
		if err != nil {
			return 0, err
		}
		total += entries
	}
	return total, nil
}
