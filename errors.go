package bptree

import "errors"

var (
	// ErrInvalidArgument signals an out-of-range argument, e.g. a
	// negative destination offset in a bulk copy.
	ErrInvalidArgument = errors.New("bptree: invalid argument")
	// ErrKeyNotFound signals a keyed lookup that demands presence of
	// an absent key.
	ErrKeyNotFound = errors.New("bptree: key not found")
	// ErrDuplicateKey signals an insert at an already present key.
	ErrDuplicateKey = errors.New("bptree: duplicate key")
	// ErrCapacityExceeded signals a bulk-copy destination too small to
	// hold all entries.
	ErrCapacityExceeded = errors.New("bptree: destination capacity exceeded")
)
