// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/straw-poll/codec"
	"github.com/danielhkuo/straw-poll/identity"
	"github.com/danielhkuo/straw-poll/models"
	"github.com/danielhkuo/straw-poll/store"
)

// Sentinel errors. The message strings are part of the external
// contract; callers and clients match on them verbatim.
var (
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrDuplicateKey       = errors.New("key already taken")
	ErrPollNotFound       = errors.New("poll doesn't exist!")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrConfigNotFound     = errors.New("config not found")
	ErrEmptyCommand       = errors.New("empty command")
	ErrAmbiguousCommand   = errors.New("ambiguous command")
	ErrEmptyQuery         = errors.New("empty query")
	ErrAmbiguousQuery     = errors.New("ambiguous query")
)

// Store key layout. The config key is reserved; poll keys carry the
// question verbatim after the prefix, so a poll can never collide with
// the config record or with a differently-worded poll.
var configKey = []byte("config")

const pollKeyPrefix = "poll/"

func pollKey(question string) []byte {
	return []byte(pollKeyPrefix + question)
}

// Registry is a deterministic state machine over one configuration
// record and a keyed collection of polls. Commands (Instantiate,
// Execute) are serialized through an internal mutex so concurrent
// callers cannot interleave a read-modify-write; queries take no lock
// and rely on the store's reader safety.
type Registry struct {
	mu        sync.Mutex
	store     store.Store
	validator identity.Validator
	codec     codec.Codec
}

// New builds a registry over the given substrate, address validator,
// and record codec.
func New(s store.Store, v identity.Validator, c codec.Codec) *Registry {
	return &Registry{store: s, validator: v, codec: c}
}

// Instantiate validates the admin address and writes the singleton
// configuration record. A registry can be initialized exactly once;
// repeat calls fail with ErrAlreadyInitialized and leave the original
// configuration untouched.
func (r *Registry) Instantiate(ctx context.Context, msg models.InstantiateMsg) (models.Response, error) {
	if err := r.validator.ValidateAddress(msg.AdminAddress); err != nil {
		return models.Response{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	initialized, err := r.store.Has(ctx, configKey)
	if err != nil {
		return models.Response{}, fmt.Errorf("check config: %w", err)
	}
	if initialized {
		return models.Response{}, ErrAlreadyInitialized
	}

	config := models.Config{AdminAddress: msg.AdminAddress}
	if err := r.save(ctx, configKey, config); err != nil {
		return models.Response{}, err
	}

	return models.NewResponse(models.ActionInstantiate), nil
}

// Execute applies one state-changing command. Exactly one branch of
// the message must be set.
func (r *Registry) Execute(ctx context.Context, msg models.ExecuteMsg) (models.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case msg.CreatePoll != nil && msg.Vote != nil:
		return models.Response{}, ErrAmbiguousCommand
	case msg.CreatePoll != nil:
		return r.createPoll(ctx, *msg.CreatePoll)
	case msg.Vote != nil:
		return r.vote(ctx, *msg.Vote)
	default:
		return models.Response{}, ErrEmptyCommand
	}
}

func (r *Registry) createPoll(ctx context.Context, msg models.CreatePollMsg) (models.Response, error) {
	taken, err := r.store.Has(ctx, pollKey(msg.Question))
	if err != nil {
		return models.Response{}, fmt.Errorf("check poll: %w", err)
	}
	if taken {
		return models.Response{}, ErrDuplicateKey
	}

	// The question is the key, verbatim. The empty string is a legal
	// question and gets its own slot.
	poll := models.Poll{Question: msg.Question}
	if err := r.save(ctx, pollKey(msg.Question), poll); err != nil {
		return models.Response{}, err
	}

	return models.NewResponse(models.ActionCreatePoll), nil
}

func (r *Registry) vote(ctx context.Context, msg models.VoteMsg) (models.Response, error) {
	// Existence is checked before the choice is parsed; a bad choice
	// against a missing poll reports the missing poll.
	exists, err := r.store.Has(ctx, pollKey(msg.Question))
	if err != nil {
		return models.Response{}, fmt.Errorf("check poll: %w", err)
	}
	if !exists {
		return models.Response{}, ErrPollNotFound
	}

	choice, ok := models.ParseChoice(msg.Choice)
	if !ok {
		return models.Response{}, ErrInvalidChoice
	}

	var poll models.Poll
	if err := r.load(ctx, pollKey(msg.Question), &poll); err != nil {
		return models.Response{}, err
	}

	switch choice {
	case models.ChoiceYes:
		poll.YesVotes++
	case models.ChoiceNo:
		poll.NoVotes++
	}

	if err := r.save(ctx, pollKey(msg.Question), poll); err != nil {
		return models.Response{}, err
	}

	return models.NewResponse(models.ActionVote), nil
}

// Query answers one read-only lookup and returns the encoded response
// bytes. Queries never mutate state. Exactly one branch of the message
// must be set.
func (r *Registry) Query(ctx context.Context, msg models.QueryMsg) ([]byte, error) {
	switch {
	case msg.GetPoll != nil && msg.GetConfig != nil:
		return nil, ErrAmbiguousQuery
	case msg.GetPoll != nil:
		return r.getPoll(ctx, *msg.GetPoll)
	case msg.GetConfig != nil:
		return r.getConfig(ctx)
	default:
		return nil, ErrEmptyQuery
	}
}

func (r *Registry) getPoll(ctx context.Context, msg models.GetPollMsg) ([]byte, error) {
	data, err := r.store.Get(ctx, pollKey(msg.Question))
	if errors.Is(err, store.ErrNotFound) {
		// An unknown question is an answerable query, not a failure.
		return r.codec.Marshal(models.GetPollResponse{Poll: nil})
	}
	if err != nil {
		return nil, fmt.Errorf("load poll: %w", err)
	}

	var poll models.Poll
	if err := r.codec.Unmarshal(data, &poll); err != nil {
		return nil, fmt.Errorf("decode poll: %w", err)
	}
	return r.codec.Marshal(models.GetPollResponse{Poll: &poll})
}

func (r *Registry) getConfig(ctx context.Context) ([]byte, error) {
	data, err := r.store.Get(ctx, configKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var config models.Config
	if err := r.codec.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return r.codec.Marshal(config)
}

func (r *Registry) save(ctx context.Context, key []byte, v any) error {
	data, err := r.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

func (r *Registry) load(ctx context.Context, key []byte, v any) error {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	if err := r.codec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
