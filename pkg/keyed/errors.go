package keyed

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by Reconcile after Close.
	ErrClosed = errors.New("keyed: list closed")

	// ErrDuplicateKey is wrapped by DuplicateKeyError.
	ErrDuplicateKey = errors.New("keyed: duplicate key")

	// ErrNoKeyFunc is returned when no KeyFunc is given and the key type
	// cannot hold an index.
	ErrNoKeyFunc = errors.New("keyed: key func required for non-int key type")
)

// DuplicateKeyError reports two items sharing a key in a single pass.
type DuplicateKeyError struct {
	Key    any
	First  int
	Second int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("keyed: duplicate key %v at index %d and %d", e.Key, e.First, e.Second)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
