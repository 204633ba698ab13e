// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines message, response, and domain types for the registry.

# Message Types

Types for parsing incoming JSON:

  - InstantiateMsg: admin_address
  - ExecuteMsg: tagged union of create_poll and vote
  - CreatePollMsg: question
  - VoteMsg: question, choice
  - QueryMsg: tagged union of get_poll and get_config
  - GetPollMsg: question

Union messages carry exactly one non-nil branch. The wire form tags the
payload with the operation name:

	{"create_poll": {"question": "..."}}
	{"vote": {"question": "...", "choice": "yes"}}
	{"get_poll": {"question": "..."}}
	{"get_config": {}}

# Response Types

Types for JSON responses:

  - Response: attributes (list of key/value pairs)
  - Attribute: key, value
  - GetPollResponse: poll (null when the question is unregistered)
  - ErrorResponse: error, message

Every successful state transition returns a Response whose attributes
record the action performed: "instantiate", "create_poll", or "vote".

# Domain Types

Internal data structures:

  - Config: admin_address
  - Poll: question, yes_votes, no_votes

# Constants

Vote choices (parse wire strings with ParseChoice; matching is exact):

	ChoiceYes = "yes"
	ChoiceNo  = "no"

Actions:

	ActionInstantiate = "instantiate"
	ActionCreatePoll  = "create_poll"
	ActionVote        = "vote"
*/
package models
