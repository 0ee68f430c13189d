// Package kvstore provides the durable key-value abstraction the project
// repository is built on. Values are JSON documents stored as raw bytes.
// Every backend is atomic per key and offers no transactions across keys.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store is a string-keyed store of JSON values.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// MGet returns one slot per key in the same order; missing keys yield nil.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	// Scan returns every key that starts with prefix, in no particular order.
	Scan(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
