// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/straw-poll/handlers"
	"github.com/danielhkuo/straw-poll/middleware"
	"github.com/danielhkuo/straw-poll/registry"
)

func NewRouter(reg *registry.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registryHandler := handlers.NewRegistryHandler(reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registry operations
	mux.HandleFunc("POST /instantiate", middleware.WithLogging(registryHandler.Instantiate))
	mux.HandleFunc("POST /execute", middleware.WithLogging(registryHandler.Execute))
	mux.HandleFunc("POST /query", middleware.WithLogging(registryHandler.Query))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("straw-poll API v1"))
	})

	return mux
}
