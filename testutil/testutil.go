// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/straw-poll/codec"
	"github.com/danielhkuo/straw-poll/identity"
	"github.com/danielhkuo/straw-poll/models"
	"github.com/danielhkuo/straw-poll/registry"
	"github.com/danielhkuo/straw-poll/store"
)

// Standard test fixtures
const (
	TestAdmin    = "addr1"
	TestQuestion = "Do you love spark IBC"
)

// NewRegistry builds a registry over a fresh in-memory store
func NewRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(store.NewMemory(), identity.RuleValidator{}, codec.JSON{})
}

// InitRegistry initializes a registry with the standard test admin
func InitRegistry(t *testing.T, reg *registry.Registry) {
	t.Helper()

	msg := models.InstantiateMsg{AdminAddress: TestAdmin}
	if _, err := reg.Instantiate(context.Background(), msg); err != nil {
		t.Fatalf("Failed to initialize registry: %v", err)
	}
}

// CreateTestPoll registers a poll for the given question
func CreateTestPoll(t *testing.T, reg *registry.Registry, question string) {
	t.Helper()

	msg := models.ExecuteMsg{CreatePoll: &models.CreatePollMsg{Question: question}}
	if _, err := reg.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
}

// CastTestVote records one vote on an existing poll
func CastTestVote(t *testing.T, reg *registry.Registry, question, choice string) {
	t.Helper()

	msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: question, Choice: choice}}
	if _, err := reg.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// GetTestPoll queries a poll and decodes the response
func GetTestPoll(t *testing.T, reg *registry.Registry, question string) models.GetPollResponse {
	t.Helper()

	msg := models.QueryMsg{GetPoll: &models.GetPollMsg{Question: question}}
	data, err := reg.Query(context.Background(), msg)
	if err != nil {
		t.Fatalf("Failed to query test poll: %v", err)
	}

	var resp models.GetPollResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("Failed to decode test poll response: %v", err)
	}
	return resp
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
