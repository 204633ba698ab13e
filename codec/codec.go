// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package codec

import "encoding/json"

// A Codec translates values to and from the byte strings held in the
// store and returned by queries. Implementations must round-trip
// losslessly: Unmarshal(Marshal(v)) restores v.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON encodes values as compact JSON. The zero value is ready to use.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
