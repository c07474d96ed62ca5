package bptree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/bptree/btree"
)

// Map is an ordered map from keys to values. Keys are unique; entries
// are kept sorted by the ordering passed at construction and iterate
// in ascending key order.
//
// Point operations run in O(log n), full scans in O(n). A Map is not
// safe for concurrent use.
type Map[K, V any] struct {
	tree *btree.Tree[K, V]
}

// NewMap creates an empty map over a B+ tree with the given branching
// factor. The order must be a positive even integer within
// [2, btree.MaxOrder], and cmp must not be nil.
func NewMap[K, V any](order int, cmp btree.Ordering[K]) (*Map[K, V], error) {
	tree, err := btree.New[K, V](order, cmp)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{tree: tree}, nil
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.tree.Len() }

// Depth returns the number of interior tree levels below the root.
func (m *Map[K, V]) Depth() int { return m.tree.Depth() }

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool { return m.tree.Contains(key) }

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) { return m.tree.Get(key) }

// Fetch returns the value stored under key, or ErrKeyNotFound when the
// key is absent.
func (m *Map[K, V]) Fetch(key K) (V, error) {
	if v, ok := m.tree.Get(key); ok {
		return v, nil
	}
	var zero V
	return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}

// Set stores val under key, overwriting a present entry.
func (m *Map[K, V]) Set(key K, val V) {
	if m.tree.Update(key, val) {
		return
	}
	m.tree.Insert(key, val)
}

// Insert adds a new entry and fails with ErrDuplicateKey when the key
// is already present.
func (m *Map[K, V]) Insert(key K, val V) error {
	if !m.tree.InsertUnique(key, val) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	return nil
}

// TryInsert adds a new entry unless the key is already present, and
// reports whether the entry was added.
func (m *Map[K, V]) TryInsert(key K, val V) bool {
	return m.tree.InsertUnique(key, val)
}

// Delete removes the entry under key and reports whether one existed.
func (m *Map[K, V]) Delete(key K) bool { return m.tree.Remove(key) }

// Clear drops all entries.
func (m *Map[K, V]) Clear() {
	n := m.tree.Len()
	m.tree.Clear()
	T().Debugf("map cleared, %d entries dropped", n)
}

// All ranges over all entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.ForEach(yield)
	}
}

// Keys ranges over all keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.tree.ForEach(func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// Values ranges over all values in ascending key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.tree.ForEach(func(_ K, v V) bool {
			return yield(v)
		})
	}
}

// CopyKeysTo copies all keys into dst starting at offset at.
func (m *Map[K, V]) CopyKeysTo(dst []K, at int) error {
	if err := m.copyBounds(len(dst), at); err != nil {
		return err
	}
	i := at
	m.tree.ForEach(func(k K, _ V) bool {
		dst[i] = k
		i++
		return true
	})
	return nil
}

// CopyValuesTo copies all values into dst starting at offset at, in
// ascending key order.
func (m *Map[K, V]) CopyValuesTo(dst []V, at int) error {
	if err := m.copyBounds(len(dst), at); err != nil {
		return err
	}
	i := at
	m.tree.ForEach(func(_ K, v V) bool {
		dst[i] = v
		i++
		return true
	})
	return nil
}

func (m *Map[K, V]) copyBounds(dstLen, at int) error {
	if at < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidArgument, at)
	}
	if dstLen-at < m.Len() {
		return fmt.Errorf("%w: %d entries into %d slots at offset %d",
			ErrCapacityExceeded, m.Len(), dstLen, at)
	}
	return nil
}

// Begin returns an iterator positioned before the first entry.
func (m *Map[K, V]) Begin() *btree.Iterator[K, V] { return m.tree.Begin() }

// End returns an iterator positioned after the last entry.
func (m *Map[K, V]) End() *btree.Iterator[K, V] { return m.tree.End() }

// LowerBound returns an iterator positioned at the first entry with a
// key equal to or greater than key.
func (m *Map[K, V]) LowerBound(key K) *btree.Iterator[K, V] {
	return m.tree.FindBound(key, false)
}

// UpperBound returns an iterator positioned at the first entry with a
// key strictly greater than key.
func (m *Map[K, V]) UpperBound(key K) *btree.Iterator[K, V] {
	return m.tree.FindBound(key, true)
}
