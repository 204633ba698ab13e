// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Straw Poll registry server.

Straw Poll is a yes/no polling registry. Polls are keyed by their
question text verbatim, each poll carries running yes and no tallies,
and a one-time initialization records an admin address.

# Starting the Server

The server runs on an in-memory store with no configuration at all:

	go run main.go -store memory

Or against a durable backend:

	go run main.go -store sqlite -path straw-poll.db
	go run main.go -store bolt -path straw-poll.bolt
	DATABASE_URL=postgres://... go run main.go -store postgres

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-store): memory, bolt, sqlite, or postgres (default: sqlite)
  - STORE_PATH (-path): Database file for bolt and sqlite backends
  - DATABASE_URL (-d): PostgreSQL connection string (postgres only)
  - CONFIG_FILE (-c): YAML config file path

# Architecture

The server wraps a deterministic state machine in an HTTP shell:

  - registry: Command and query semantics over a key/value store
  - store: Storage backends (memory, bbolt, database/sql)
  - codec: Record encoding
  - identity: Address validation
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Message envelopes and record types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
