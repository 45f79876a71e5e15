// Package records defines the storage contract for scored receipts.
package records

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned by Put when the id already holds a
	// value. The stored value is never overwritten.
	ErrDuplicateID = errors.New("record id already exists")
)

// Store maps an opaque id to a computed point total. Put is
// first-write-wins with no update path; Get may be called any number of
// times. Implementations must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, id string, points int64) error
	Get(ctx context.Context, id string) (int64, error)
}
