// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package codec defines the byte encoding used for stored records and
// query responses. The registry is constructed with a Codec so the
// persisted format is a single injection point; JSON is the only
// implementation in use.
package codec
