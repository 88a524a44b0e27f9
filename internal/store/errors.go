package store

import "errors"

var (
	// ErrNotFound is returned from an Update callback when the record it
	// targets is absent. The cycle aborts without writing.
	ErrNotFound = errors.New("not found")
	// ErrNoChange may be returned from an Update callback to finish the
	// cycle without writing anything.
	ErrNoChange = errors.New("no change")
)
