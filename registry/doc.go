// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the poll registry state machine.

The registry manages two kinds of records in a byte-keyed store: one
singleton configuration written at initialization, and one poll record
per question. Questions are the identity of a poll, compared verbatim;
there is no trimming, case folding, or other normalization, and the
empty string is a legal question.

# Operations

Three entry points cover the whole lifecycle:

  - Instantiate: validate the admin address and write the
    configuration. Allowed exactly once.
  - Execute: apply one command. create_poll registers a new question
    with zeroed tallies; vote increments exactly one counter of an
    existing poll by one.
  - Query: answer one read-only lookup. get_poll returns the poll or
    null (an unknown question is not an error); get_config returns the
    configuration.

Successful commands return a Response whose attributes name the action
performed. Queries return encoded bytes ready to hand to a client.

# Errors

Failures surface as sentinel errors with fixed message strings:

  - ErrAlreadyInitialized: second Instantiate.
  - ErrDuplicateKey ("key already taken"): create_poll on a question
    that already exists.
  - ErrPollNotFound ("poll doesn't exist!"): vote on an unknown
    question. Checked before the choice, so a bad choice against a
    missing poll reports the missing poll.
  - ErrInvalidChoice ("invalid choice"): vote with anything but the
    exact strings "yes" or "no".
  - ErrConfigNotFound: get_config before initialization.
  - ErrEmptyCommand, ErrAmbiguousCommand, ErrEmptyQuery,
    ErrAmbiguousQuery: malformed message envelopes.

# Concurrency

Commands serialize through one mutex, so read-modify-write cycles never
interleave and tallies never lose increments. Queries bypass the lock;
they see either the state before or after any in-flight command, never
a torn record.
*/
package registry
