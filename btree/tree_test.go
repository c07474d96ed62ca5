package btree

import (
	"errors"
	"testing"
)

func intCmp(a, b int) int { return a - b }

func newIntTree(t *testing.T, order int) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](order, intCmp)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tree
}

func collectKeys(tree *Tree[int, int]) []int {
	var out []int
	tree.ForEach(func(k, _ int) bool {
		out = append(out, k)
		return true
	})
	return out
}

func checkTree(t *testing.T, tree *Tree[int, int]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invariants violated: %v", err)
	}
}

func TestNewRejectsInvalidOrder(t *testing.T) {
	for _, order := range []int{0, -2, 1, 3, 7, 1026, 2048} {
		_, err := New[int, int](order, intCmp)
		if !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("order %d: expected ErrInvalidOrder, got %v", order, err)
		}
	}
}

func TestNewRejectsMissingOrdering(t *testing.T) {
	_, err := New[int, int](4, nil)
	if !errors.Is(err, ErrNoOrdering) {
		t.Fatalf("expected ErrNoOrdering, got %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := newIntTree(t, 4)
	if tree.Len() != 0 || tree.Depth() != 0 {
		t.Fatalf("unexpected empty tree state len=%d depth=%d", tree.Len(), tree.Depth())
	}
	if _, ok := tree.Get(1); ok {
		t.Errorf("Get on empty tree reported a value")
	}
	it := tree.Begin()
	defer it.Release()
	if it.Next() {
		t.Errorf("Next on empty tree succeeded")
	}
	if it.Valid() {
		t.Errorf("iterator on empty tree became valid")
	}
	if !it.ended {
		t.Errorf("exhausted forward iterator did not record the end")
	}
	checkTree(t, tree)
}

func TestLeafRootInsertAndGet(t *testing.T) {
	tree := newIntTree(t, 4)
	tree.Insert(2, 20)
	tree.Insert(1, 10)
	tree.Insert(3, 30)
	if tree.Len() != 3 || tree.Depth() != 0 {
		t.Fatalf("unexpected state len=%d depth=%d", tree.Len(), tree.Depth())
	}
	for _, k := range []int{1, 2, 3} {
		v, ok := tree.Get(k)
		if !ok || v != k*10 {
			t.Errorf("Get(%d) = %d, %v", k, v, ok)
		}
	}
	if tree.Contains(4) {
		t.Errorf("Contains reported an absent key")
	}
	checkTree(t, tree)
}

func TestRootLeafSplit(t *testing.T) {
	tree := newIntTree(t, 4)
	for k := 1; k <= 5; k++ {
		tree.Insert(k, k)
	}
	if tree.Depth() != 1 || tree.Len() != 5 {
		t.Fatalf("unexpected state after split: depth=%d len=%d", tree.Depth(), tree.Len())
	}
	root := tree.root.node.(*innerNode[int, int])
	if tree.root.n != 2 {
		t.Fatalf("new root holds %d slots, expected 2", tree.root.n)
	}
	if root.slots[1].key != 2 {
		t.Errorf("bubbled pivot = %d, expected 2", root.slots[1].key)
	}
	if root.slots[0].child.n != 2 || root.slots[1].child.n != 3 {
		t.Errorf("leaf occupancy after split = %d/%d, expected 2/3",
			root.slots[0].child.n, root.slots[1].child.n)
	}
	checkTree(t, tree)
}

func TestDescendingInserts(t *testing.T) {
	tree := newIntTree(t, 4)
	for k := 10; k >= 1; k-- {
		tree.Insert(k, k)
		checkTree(t, tree)
	}
	if tree.Len() != 10 {
		t.Fatalf("len = %d, expected 10", tree.Len())
	}
	keys := collectKeys(tree)
	for i, k := range keys {
		if k != i+1 {
			t.Fatalf("iteration order broken: %v", keys)
		}
	}
}

func TestUpdate(t *testing.T) {
	tree := newIntTree(t, 4)
	for k := 1; k <= 20; k++ {
		tree.Insert(k, k)
	}
	before := tree.version
	if !tree.Update(7, 700) {
		t.Fatalf("Update missed a present key")
	}
	if v, _ := tree.Get(7); v != 700 {
		t.Errorf("Get after Update = %d", v)
	}
	if tree.version == before {
		t.Errorf("Update did not bump the version")
	}
	if tree.Update(99, 1) {
		t.Errorf("Update succeeded on an absent key")
	}
	if tree.Len() != 20 {
		t.Errorf("Update changed the entry count")
	}
	checkTree(t, tree)
}

func TestInsertUnique(t *testing.T) {
	tree := newIntTree(t, 4)
	if !tree.InsertUnique(42, 1) {
		t.Fatalf("first InsertUnique refused")
	}
	if tree.InsertUnique(42, 2) {
		t.Fatalf("second InsertUnique succeeded")
	}
	if tree.Len() != 1 {
		t.Errorf("len = %d, expected 1", tree.Len())
	}
	if v, _ := tree.Get(42); v != 1 {
		t.Errorf("value = %d, expected the first insert to win", v)
	}
}

func TestDuplicateInsertsLandLeftmost(t *testing.T) {
	tree := newIntTree(t, 4)
	tree.Insert(5, 1)
	tree.Insert(5, 2)
	tree.Insert(5, 3)
	if tree.Len() != 3 {
		t.Fatalf("len = %d, expected 3", tree.Len())
	}
	// Lower-bound insertion puts later entries left of the equal run.
	if v, _ := tree.Get(5); v != 3 {
		t.Errorf("Get = %d, expected the latest insert at the left", v)
	}
	if !tree.Remove(5) || tree.Len() != 2 {
		t.Fatalf("Remove of one duplicate failed")
	}
	if v, _ := tree.Get(5); v != 2 {
		t.Errorf("Get after Remove = %d, expected the next duplicate", v)
	}
}

func TestClear(t *testing.T) {
	tree := newIntTree(t, 4)
	for k := 1; k <= 50; k++ {
		tree.Insert(k, k)
	}
	before := tree.version
	tree.Clear()
	if tree.Len() != 0 || tree.Depth() != 0 {
		t.Fatalf("clear left len=%d depth=%d", tree.Len(), tree.Depth())
	}
	if tree.version <= before {
		t.Errorf("Clear did not bump the version")
	}
	if tree.Contains(25) {
		t.Errorf("cleared tree still contains a key")
	}
	tree.Insert(3, 3)
	if got := collectKeys(tree); len(got) != 1 || got[0] != 3 {
		t.Errorf("reuse after Clear broken: %v", got)
	}
	checkTree(t, tree)
}

func TestVersionBumpsOnStructuralChange(t *testing.T) {
	tree := newIntTree(t, 4)
	last := tree.version
	bumped := func(op string) {
		t.Helper()
		if tree.version <= last {
			t.Fatalf("%s did not increase the version", op)
		}
		last = tree.version
	}
	tree.Insert(1, 1)
	bumped("Insert")
	tree.Insert(2, 2)
	bumped("Insert")
	if !tree.Remove(1) {
		t.Fatalf("Remove missed")
	}
	bumped("Remove")
	if tree.Remove(1) {
		t.Fatalf("second Remove succeeded")
	}
	if tree.version != last {
		t.Errorf("failed Remove changed the version")
	}
	tree.Clear()
	bumped("Clear")
}
