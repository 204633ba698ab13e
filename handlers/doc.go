// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Straw Poll API.

# Handler Types

A single handler struct wraps the registry state machine:

  - RegistryHandler: Initialization, commands, and queries

Handlers are created via a constructor that accepts the registry:

	registryHandler := handlers.NewRegistryHandler(reg)

# Endpoints

The three registry operations map onto three POST routes:

	POST /instantiate → Instantiate (records the admin config, once)
	POST /execute     → Execute (create_poll or vote envelope)
	POST /query       → Query (get_poll or get_config envelope)

Command responses carry an action attribute naming what ran. Query
responses are the registry's encoded payload passed through untouched,
so a get_poll miss reads {"poll":null} on the wire.

# Error Mapping

Registry errors translate onto HTTP statuses:

	key already taken, already initialized → 409 Conflict
	poll doesn't exist!, config not found  → 404 Not Found
	invalid choice, bad address, bad envelope → 400 Bad Request
	anything else → 500 with a generic message

The registry's message strings reach the client verbatim in the
error response body; only unknown failures are masked.
*/
package handlers
