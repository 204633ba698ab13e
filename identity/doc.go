// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity validates the account addresses accepted by the
registry.

The Validator interface is the registry's only dependency on address
semantics. RuleValidator is the stock implementation: it enforces
format rules (lowercase alphanumeric, leading letter, 3 to 90
characters) without network or key material, so any well-formed
address is accepted regardless of whether an account exists behind it.

Validation failures wrap ErrInvalidAddress:

	if errors.Is(err, identity.ErrInvalidAddress) { ... }
*/
package identity
