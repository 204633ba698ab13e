// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/straw-poll/codec"
	"github.com/danielhkuo/straw-poll/identity"
	"github.com/danielhkuo/straw-poll/models"
	"github.com/danielhkuo/straw-poll/store"
)

const (
	testAdmin    = "addr1"
	testQuestion = "Do you love spark IBC"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return New(store.NewMemory(), identity.RuleValidator{}, codec.JSON{})
}

func instantiate(t *testing.T, r *Registry) {
	t.Helper()
	if _, err := r.Instantiate(context.Background(), models.InstantiateMsg{AdminAddress: testAdmin}); err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
}

func createPoll(t *testing.T, r *Registry, question string) {
	t.Helper()
	msg := models.ExecuteMsg{CreatePoll: &models.CreatePollMsg{Question: question}}
	if _, err := r.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute(create_poll) error = %v", err)
	}
}

func vote(t *testing.T, r *Registry, question, choice string) {
	t.Helper()
	msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: question, Choice: choice}}
	if _, err := r.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute(vote) error = %v", err)
	}
}

// getPoll runs a get_poll query and decodes the response bytes.
func getPoll(t *testing.T, r *Registry, question string) models.GetPollResponse {
	t.Helper()
	data, err := r.Query(context.Background(), models.QueryMsg{GetPoll: &models.GetPollMsg{Question: question}})
	if err != nil {
		t.Fatalf("Query(get_poll) error = %v", err)
	}
	var resp models.GetPollResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode get_poll response: %v", err)
	}
	return resp
}

// checkAction asserts the response carries exactly one action attribute.
func checkAction(t *testing.T, resp models.Response, want string) {
	t.Helper()
	if len(resp.Attributes) != 1 {
		t.Fatalf("attributes = %+v, want exactly one", resp.Attributes)
	}
	got := resp.Attributes[0]
	if got.Key != "action" || got.Value != want {
		t.Errorf("attribute = %s=%s, want action=%s", got.Key, got.Value, want)
	}
}

func TestInstantiate(t *testing.T) {
	t.Run("writes config and reports action", func(t *testing.T) {
		r := newTestRegistry(t)

		resp, err := r.Instantiate(context.Background(), models.InstantiateMsg{AdminAddress: testAdmin})
		if err != nil {
			t.Fatalf("Instantiate() error = %v", err)
		}
		checkAction(t, resp, models.ActionInstantiate)

		data, err := r.Query(context.Background(), models.QueryMsg{GetConfig: &models.GetConfigMsg{}})
		if err != nil {
			t.Fatalf("Query(get_config) error = %v", err)
		}
		var config models.Config
		if err := json.Unmarshal(data, &config); err != nil {
			t.Fatalf("decode get_config response: %v", err)
		}
		if config.AdminAddress != testAdmin {
			t.Errorf("admin_address = %q, want %q", config.AdminAddress, testAdmin)
		}
	})

	t.Run("rejects invalid admin address", func(t *testing.T) {
		tests := []struct {
			name string
			addr string
		}{
			{"empty", ""},
			{"uppercase", "Addr1"},
			{"whitespace", "addr 1"},
			{"too short", "ab"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := newTestRegistry(t)

				_, err := r.Instantiate(context.Background(), models.InstantiateMsg{AdminAddress: tt.addr})
				if !errors.Is(err, identity.ErrInvalidAddress) {
					t.Errorf("Instantiate(%q) error = %v, want ErrInvalidAddress", tt.addr, err)
				}

				// A rejected initialization must not leave a config behind
				if _, err := r.Query(context.Background(), models.QueryMsg{GetConfig: &models.GetConfigMsg{}}); !errors.Is(err, ErrConfigNotFound) {
					t.Errorf("Query(get_config) error = %v, want ErrConfigNotFound", err)
				}
			})
		}
	})

	t.Run("rejects second initialization", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)

		_, err := r.Instantiate(context.Background(), models.InstantiateMsg{AdminAddress: "addr2"})
		if !errors.Is(err, ErrAlreadyInitialized) {
			t.Fatalf("second Instantiate() error = %v, want ErrAlreadyInitialized", err)
		}

		// First admin stays in place
		data, err := r.Query(context.Background(), models.QueryMsg{GetConfig: &models.GetConfigMsg{}})
		if err != nil {
			t.Fatalf("Query(get_config) error = %v", err)
		}
		var config models.Config
		if err := json.Unmarshal(data, &config); err != nil {
			t.Fatalf("decode get_config response: %v", err)
		}
		if config.AdminAddress != testAdmin {
			t.Errorf("admin_address = %q, want %q", config.AdminAddress, testAdmin)
		}
	})
}

func TestCreatePoll(t *testing.T) {
	t.Run("registers question with zeroed tallies", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)

		msg := models.ExecuteMsg{CreatePoll: &models.CreatePollMsg{Question: testQuestion}}
		resp, err := r.Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute(create_poll) error = %v", err)
		}
		checkAction(t, resp, models.ActionCreatePoll)

		got := getPoll(t, r, testQuestion)
		if got.Poll == nil {
			t.Fatal("get_poll returned null for a registered question")
		}
		if got.Poll.Question != testQuestion {
			t.Errorf("question = %q, want %q", got.Poll.Question, testQuestion)
		}
		if got.Poll.YesVotes != 0 || got.Poll.NoVotes != 0 {
			t.Errorf("tallies = %d/%d, want 0/0", got.Poll.YesVotes, got.Poll.NoVotes)
		}
	})

	t.Run("rejects duplicate question", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, testQuestion)
		vote(t, r, testQuestion, "yes")

		msg := models.ExecuteMsg{CreatePoll: &models.CreatePollMsg{Question: testQuestion}}
		_, err := r.Execute(context.Background(), msg)
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("Execute(create_poll) error = %v, want ErrDuplicateKey", err)
		}

		// The failed create must not reset the existing tallies
		got := getPoll(t, r, testQuestion)
		if got.Poll == nil || got.Poll.YesVotes != 1 {
			t.Errorf("poll = %+v, want yes_votes intact at 1", got.Poll)
		}
	})

	t.Run("empty question is a valid key", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, "")

		got := getPoll(t, r, "")
		if got.Poll == nil {
			t.Fatal("get_poll returned null for the empty question")
		}
		if got.Poll.Question != "" {
			t.Errorf("question = %q, want empty", got.Poll.Question)
		}

		msg := models.ExecuteMsg{CreatePoll: &models.CreatePollMsg{Question: ""}}
		if _, err := r.Execute(context.Background(), msg); !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("second empty create error = %v, want ErrDuplicateKey", err)
		}
	})

	t.Run("questions differing only by whitespace are distinct", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, "Is water wet")
		createPoll(t, r, "Is water wet ")

		a := getPoll(t, r, "Is water wet")
		b := getPoll(t, r, "Is water wet ")
		if a.Poll == nil || b.Poll == nil {
			t.Fatal("expected both variants to exist")
		}

		vote(t, r, "Is water wet", "yes")
		if got := getPoll(t, r, "Is water wet "); got.Poll.YesVotes != 0 {
			t.Errorf("vote leaked into the padded variant: %+v", got.Poll)
		}
	})

	t.Run("works before initialization", func(t *testing.T) {
		r := newTestRegistry(t)
		createPoll(t, r, testQuestion)

		if got := getPoll(t, r, testQuestion); got.Poll == nil {
			t.Error("create_poll should not require a config record")
		}
	})
}

func TestVote(t *testing.T) {
	t.Run("yes and no increment their own counters", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, testQuestion)

		msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: testQuestion, Choice: "yes"}}
		resp, err := r.Execute(context.Background(), msg)
		if err != nil {
			t.Fatalf("Execute(vote) error = %v", err)
		}
		checkAction(t, resp, models.ActionVote)

		got := getPoll(t, r, testQuestion)
		if got.Poll.YesVotes != 1 || got.Poll.NoVotes != 0 {
			t.Errorf("tallies = %d/%d, want 1/0", got.Poll.YesVotes, got.Poll.NoVotes)
		}

		vote(t, r, testQuestion, "no")
		vote(t, r, testQuestion, "yes")

		got = getPoll(t, r, testQuestion)
		if got.Poll.YesVotes != 2 || got.Poll.NoVotes != 1 {
			t.Errorf("tallies = %d/%d, want 2/1", got.Poll.YesVotes, got.Poll.NoVotes)
		}
	})

	t.Run("rejects vote on unknown question", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)

		msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: "never created", Choice: "yes"}}
		_, err := r.Execute(context.Background(), msg)
		if !errors.Is(err, ErrPollNotFound) {
			t.Errorf("Execute(vote) error = %v, want ErrPollNotFound", err)
		}
	})

	t.Run("missing poll wins over bad choice", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)

		// Both the question and the choice are bad; the missing poll
		// must be reported.
		msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: "never created", Choice: "maybe"}}
		_, err := r.Execute(context.Background(), msg)
		if !errors.Is(err, ErrPollNotFound) {
			t.Errorf("Execute(vote) error = %v, want ErrPollNotFound", err)
		}
		if errors.Is(err, ErrInvalidChoice) {
			t.Error("invalid choice reported before the existence check")
		}
	})

	t.Run("rejects invalid choice and leaves tallies untouched", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, testQuestion)
		vote(t, r, testQuestion, "yes")

		tests := []struct {
			name   string
			choice string
		}{
			{"empty", ""},
			{"uppercase", "YES"},
			{"capitalized", "Yes"},
			{"padded", " yes"},
			{"unrelated", "maybe"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: testQuestion, Choice: tt.choice}}
				_, err := r.Execute(context.Background(), msg)
				if !errors.Is(err, ErrInvalidChoice) {
					t.Errorf("Execute(vote %q) error = %v, want ErrInvalidChoice", tt.choice, err)
				}
			})
		}

		got := getPoll(t, r, testQuestion)
		if got.Poll.YesVotes != 1 || got.Poll.NoVotes != 0 {
			t.Errorf("tallies = %d/%d, want 1/0 after rejected votes", got.Poll.YesVotes, got.Poll.NoVotes)
		}
	})
}

func TestQuery(t *testing.T) {
	t.Run("get_poll on unknown question returns null poll", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)

		data, err := r.Query(context.Background(), models.QueryMsg{GetPoll: &models.GetPollMsg{Question: "never created"}})
		if err != nil {
			t.Fatalf("Query(get_poll) error = %v", err)
		}
		if string(data) != `{"poll":null}` {
			t.Errorf("response = %s, want {\"poll\":null}", data)
		}
	})

	t.Run("get_config before initialization fails", func(t *testing.T) {
		r := newTestRegistry(t)

		_, err := r.Query(context.Background(), models.QueryMsg{GetConfig: &models.GetConfigMsg{}})
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Query(get_config) error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("queries are repeatable and read-only", func(t *testing.T) {
		r := newTestRegistry(t)
		instantiate(t, r)
		createPoll(t, r, testQuestion)
		vote(t, r, testQuestion, "yes")

		first, err := r.Query(context.Background(), models.QueryMsg{GetPoll: &models.GetPollMsg{Question: testQuestion}})
		if err != nil {
			t.Fatalf("Query(get_poll) error = %v", err)
		}
		second, err := r.Query(context.Background(), models.QueryMsg{GetPoll: &models.GetPollMsg{Question: testQuestion}})
		if err != nil {
			t.Fatalf("Query(get_poll) error = %v", err)
		}
		if string(first) != string(second) {
			t.Errorf("repeated query differs: %s vs %s", first, second)
		}

		got := getPoll(t, r, testQuestion)
		if got.Poll.YesVotes != 1 || got.Poll.NoVotes != 0 {
			t.Errorf("tallies = %d/%d changed by queries", got.Poll.YesVotes, got.Poll.NoVotes)
		}
	})
}

func TestMessageEnvelopes(t *testing.T) {
	r := newTestRegistry(t)
	instantiate(t, r)
	createPoll(t, r, testQuestion)

	t.Run("empty command", func(t *testing.T) {
		if _, err := r.Execute(context.Background(), models.ExecuteMsg{}); !errors.Is(err, ErrEmptyCommand) {
			t.Errorf("Execute({}) error = %v, want ErrEmptyCommand", err)
		}
	})

	t.Run("ambiguous command", func(t *testing.T) {
		msg := models.ExecuteMsg{
			CreatePoll: &models.CreatePollMsg{Question: "a"},
			Vote:       &models.VoteMsg{Question: testQuestion, Choice: "yes"},
		}
		if _, err := r.Execute(context.Background(), msg); !errors.Is(err, ErrAmbiguousCommand) {
			t.Errorf("Execute(both) error = %v, want ErrAmbiguousCommand", err)
		}

		// Neither branch may have been applied
		if got := getPoll(t, r, "a"); got.Poll != nil {
			t.Error("ambiguous command created a poll")
		}
		if got := getPoll(t, r, testQuestion); got.Poll.YesVotes != 0 {
			t.Error("ambiguous command recorded a vote")
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if _, err := r.Query(context.Background(), models.QueryMsg{}); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Query({}) error = %v, want ErrEmptyQuery", err)
		}
	})

	t.Run("ambiguous query", func(t *testing.T) {
		msg := models.QueryMsg{
			GetPoll:   &models.GetPollMsg{Question: testQuestion},
			GetConfig: &models.GetConfigMsg{},
		}
		if _, err := r.Query(context.Background(), msg); !errors.Is(err, ErrAmbiguousQuery) {
			t.Errorf("Query(both) error = %v, want ErrAmbiguousQuery", err)
		}
	})
}

// TestErrorMessages locks the exact strings clients match on.
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"duplicate key", ErrDuplicateKey, "key already taken"},
		{"poll not found", ErrPollNotFound, "poll doesn't exist!"},
		{"invalid choice", ErrInvalidChoice, "invalid choice"},
		{"already initialized", ErrAlreadyInitialized, "already initialized"},
		{"config not found", ErrConfigNotFound, "config not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("message = %q, want %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestConcurrentVotes(t *testing.T) {
	r := newTestRegistry(t)
	instantiate(t, r)
	createPoll(t, r, testQuestion)

	const voters = 100

	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			choice := "yes"
			if i%2 == 1 {
				choice = "no"
			}
			msg := models.ExecuteMsg{Vote: &models.VoteMsg{Question: testQuestion, Choice: choice}}
			if _, err := r.Execute(context.Background(), msg); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Fatalf("%d concurrent votes failed", n)
	}

	// Every increment must survive; lost updates would show up here
	got := getPoll(t, r, testQuestion)
	if got.Poll == nil {
		t.Fatal("poll missing after concurrent votes")
	}
	if got.Poll.YesVotes != voters/2 || got.Poll.NoVotes != voters/2 {
		t.Errorf("tallies = %d/%d, want %d/%d", got.Poll.YesVotes, got.Poll.NoVotes, voters/2, voters/2)
	}
}

// TestRegistryOverDurableStores runs the core lifecycle against the
// file-backed substrates to catch encoding or key handling drift.
func TestRegistryOverDurableStores(t *testing.T) {
	stores := map[string]func(t *testing.T) store.Store{
		"bolt": func(t *testing.T) store.Store {
			s, err := store.OpenBolt(filepath.Join(t.TempDir(), "registry.bolt"))
			if err != nil {
				t.Fatalf("OpenBolt() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
		"sqlite": func(t *testing.T) store.Store {
			s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "registry.db"))
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			r := New(open(t), identity.RuleValidator{}, codec.JSON{})
			instantiate(t, r)
			createPoll(t, r, testQuestion)
			vote(t, r, testQuestion, "yes")
			vote(t, r, testQuestion, "no")
			vote(t, r, testQuestion, "yes")

			got := getPoll(t, r, testQuestion)
			if got.Poll == nil {
				t.Fatal("poll missing")
			}
			if got.Poll.YesVotes != 2 || got.Poll.NoVotes != 1 {
				t.Errorf("tallies = %d/%d, want 2/1", got.Poll.YesVotes, got.Poll.NoVotes)
			}
		})
	}
}
