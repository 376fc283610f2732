// Package kv is the durable local storage port. The cart and the theme
// preference live behind it; every write is a full-value overwrite.
package kv

import (
	"context"
	"errors"
)

// Store defines the key-value persistence interface.
// Consumers define this interface, not the backing implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
