package btree

import "errors"

var (
	// ErrInvalidOrder signals a branching factor that is not a positive
	// even integer within [2, MaxOrder].
	ErrInvalidOrder = errors.New("btree: invalid order")
	// ErrNoOrdering signals a missing key comparison function.
	ErrNoOrdering = errors.New("btree: ordering function is required")
	// ErrIteratorInvalid signals an iterator that was overtaken by a
	// structural change of its tree, or a Current call on an iterator
	// that is not positioned on an entry.
	ErrIteratorInvalid = errors.New("btree: iterator is not valid")
	// ErrIteratorReleased signals use of an iterator after Release.
	ErrIteratorReleased = errors.New("btree: iterator has been released")
)
