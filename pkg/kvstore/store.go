// Package kvstore is the persisted-state facility: opaque blobs under string
// keys plus capped append-only lists.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Append adds value to the tail of the list at key and drops entries from
	// the head until at most capacity remain. It is atomic with respect to
	// other Appends on the same key.
	Append(ctx context.Context, key string, value []byte, capacity int) error
	// List returns the list at key, oldest first. A missing key is an empty list.
	List(ctx context.Context, key string) ([][]byte, error)

	Close() error
}
