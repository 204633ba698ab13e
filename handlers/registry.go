// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/straw-poll/identity"
	"github.com/danielhkuo/straw-poll/middleware"
	"github.com/danielhkuo/straw-poll/models"
	"github.com/danielhkuo/straw-poll/registry"
)

type RegistryHandler struct {
	registry *registry.Registry
}

func NewRegistryHandler(reg *registry.Registry) *RegistryHandler {
	return &RegistryHandler{registry: reg}
}

// Instantiate handles POST /instantiate
func (h *RegistryHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	var msg models.InstantiateMsg
	if err := middleware.ParseJSONBody(r, &msg); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.registry.Instantiate(r.Context(), msg)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	slog.Info("registry initialized", "admin_address", msg.AdminAddress)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Execute handles POST /execute
func (h *RegistryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var msg models.ExecuteMsg
	if err := middleware.ParseJSONBody(r, &msg); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.registry.Execute(r.Context(), msg)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	switch {
	case msg.CreatePoll != nil:
		slog.Info("poll created", "question", msg.CreatePoll.Question)
	case msg.Vote != nil:
		slog.Info("vote recorded", "question", msg.Vote.Question, "choice", msg.Vote.Choice)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Query handles POST /query
func (h *RegistryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var msg models.QueryMsg
	if err := middleware.ParseJSONBody(r, &msg); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	data, err := h.registry.Query(r.Context(), msg)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	// Query payloads are already encoded; hand them through untouched
	middleware.RawJSONResponse(w, http.StatusOK, data)
}

// writeRegistryError maps registry failures onto HTTP statuses. The
// registry's message strings reach the client verbatim; only unknown
// failures are masked behind a generic message.
func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrDuplicateKey),
		errors.Is(err, registry.ErrAlreadyInitialized):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, registry.ErrPollNotFound),
		errors.Is(err, registry.ErrConfigNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrInvalidChoice),
		errors.Is(err, identity.ErrInvalidAddress),
		errors.Is(err, registry.ErrEmptyCommand),
		errors.Is(err, registry.ErrAmbiguousCommand),
		errors.Is(err, registry.ErrEmptyQuery),
		errors.Is(err, registry.ErrAmbiguousQuery):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("registry operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}
