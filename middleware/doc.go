// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /execute", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(duration_ms). Request IDs come from the X-Request-ID header when a
proxy already assigned one, otherwise a fresh UUID, and are echoed back
on the response.

# CORS Middleware

Enable cross-origin requests for browser clients:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type and
X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.RawJSONResponse(w, http.StatusOK, queryBytes)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

RawJSONResponse passes through bytes that are already encoded, which is
how query payloads reach the client without a decode-reencode cycle.

Parse JSON request bodies:

	var msg models.ExecuteMsg
	if err := middleware.ParseJSONBody(r, &msg); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in the request log.
*/
package middleware
