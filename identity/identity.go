// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"fmt"
)

var ErrInvalidAddress = errors.New("invalid address")

// Address length bounds, matching bech32 account address limits
const (
	minAddressLen = 3
	maxAddressLen = 90
)

// Validator gates the account addresses the registry will accept.
type Validator interface {
	ValidateAddress(addr string) error
}

// RuleValidator checks address format rules without consulting any
// external system: lowercase alphanumeric, starts with a letter, and
// within length bounds. The zero value is ready to use.
type RuleValidator struct{}

func (RuleValidator) ValidateAddress(addr string) error {
	if len(addr) < minAddressLen || len(addr) > maxAddressLen {
		return fmt.Errorf("%w: length %d outside %d to %d", ErrInvalidAddress, len(addr), minAddressLen, maxAddressLen)
	}
	if addr[0] < 'a' || addr[0] > 'z' {
		return fmt.Errorf("%w: must start with a lowercase letter", ErrInvalidAddress)
	}
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return fmt.Errorf("%w: character %q at position %d", ErrInvalidAddress, c, i)
		}
	}
	return nil
}
