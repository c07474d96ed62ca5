package bptree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/bptree/btree"
)

// Set is an ordered set of keys over a B+ tree. Members are unique and
// iterate in ascending order of the ordering passed at construction.
//
// A Set is not safe for concurrent use.
type Set[K any] struct {
	tree *btree.Tree[K, struct{}]
	cmp  btree.Ordering[K]
}

// NewSet creates an empty set with the given branching factor; order
// and cmp are validated as in NewMap.
func NewSet[K any](order int, cmp btree.Ordering[K]) (*Set[K], error) {
	tree, err := btree.New[K, struct{}](order, cmp)
	if err != nil {
		return nil, err
	}
	return &Set[K]{tree: tree, cmp: cmp}, nil
}

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.tree.Len() }

// Contains reports whether key is a member.
func (s *Set[K]) Contains(key K) bool { return s.tree.Contains(key) }

// Add inserts key and reports whether it was not a member before.
func (s *Set[K]) Add(key K) bool {
	return s.tree.InsertUnique(key, struct{}{})
}

// Delete removes key and reports whether it was a member.
func (s *Set[K]) Delete(key K) bool { return s.tree.Remove(key) }

// Clear drops all members.
func (s *Set[K]) Clear() { s.tree.Clear() }

// All ranges over all members in ascending order.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.tree.ForEach(func(k K, _ struct{}) bool {
			return yield(k)
		})
	}
}

// CopyTo copies all members into dst starting at offset at.
func (s *Set[K]) CopyTo(dst []K, at int) error {
	if at < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidArgument, at)
	}
	if len(dst)-at < s.Len() {
		return fmt.Errorf("%w: %d members into %d slots at offset %d",
			ErrCapacityExceeded, s.Len(), len(dst), at)
	}
	i := at
	s.tree.ForEach(func(k K, _ struct{}) bool {
		dst[i] = k
		i++
		return true
	})
	return nil
}

// Begin returns an iterator positioned before the first member.
func (s *Set[K]) Begin() *btree.Iterator[K, struct{}] { return s.tree.Begin() }

// End returns an iterator positioned after the last member.
func (s *Set[K]) End() *btree.Iterator[K, struct{}] { return s.tree.End() }

// LowerBound returns an iterator positioned at the first member equal
// to or greater than key.
func (s *Set[K]) LowerBound(key K) *btree.Iterator[K, struct{}] {
	return s.tree.FindBound(key, false)
}

// UpperBound returns an iterator positioned at the first member
// strictly greater than key.
func (s *Set[K]) UpperBound(key K) *btree.Iterator[K, struct{}] {
	return s.tree.FindBound(key, true)
}
