// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the byte-keyed persistence substrate behind the
registry.

The Store interface is a three-operation key-value contract (Get, Set,
Has) over opaque byte strings. The registry composes its own keys and
encodes its own values; nothing in this package knows what a poll is.

# Implementations

  - Memory: map guarded by a RWMutex; for tests and throwaway runs.
  - Bolt: single-bucket bbolt file; durable single-file deployments.
  - SQL: one key-value table via database/sql, speaking either the
    sqlite dialect (modernc.org/sqlite, the default) or postgres
    (lib/pq). Placeholders are rebound to $N form for postgres.

All implementations are safe for concurrent use and honor context
cancellation before touching the underlying medium.

# Error Types

  - ErrNotFound: a Get on a key that holds no value.
*/
package store
