// Package kv provides single-key blob storage used by the local fallback
// backend. Every mutation is a read-modify-write under one atomic boundary.
package kv

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("kv store closed")

// UpdateFunc receives the current value (found=false when absent) and returns
// the value to store. Returning a nil slice leaves the key untouched.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a named-key blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
