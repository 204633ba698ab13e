// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Straw Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(reg)

# Endpoints

Health:

	GET /health

Registry operations:

	POST /instantiate - Record the admin config (once)
	POST /execute     - Run a command (create_poll or vote)
	POST /query       - Read state (get_poll or get_config)

All three accept a JSON body. Execute and query bodies are envelopes
whose single populated field names the operation.

# Handler Initialization

The router creates the handler with dependency injection:

	registryHandler := handlers.NewRegistryHandler(reg)

Registry routes are wrapped in logging middleware, which stamps each
response with an X-Request-ID header.
*/
package router
