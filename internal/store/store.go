// Package store defines the durable key-value slot contract used to persist
// dashboard state. Each slot holds one opaque value that is always replaced
// wholesale.
package store

import "errors"

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Slots is a durable key-value store with whole-value overwrite semantics.
type Slots interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}
