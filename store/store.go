// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Store is the byte-keyed substrate the registry persists into. Keys
// and values are opaque byte strings. Implementations must be safe for
// concurrent readers and writers and must not retain or alias the
// slices passed in or handed out.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value []byte) error

	// Has reports whether key holds a value.
	Has(ctx context.Context, key []byte) (bool, error)
}
