// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll defines the poll domain model: options, the three poll
variants, the lifecycle state machine and the results visibility policy.

# Lifecycle

Polls move through three states and never go back:

	draft --Start--> active --End--> ended

Only drafts can be edited. A poll whose scheduled end date has passed is
closed for new votes even while its status is still active:

	p.CanBeVotedOn(now) // status == active && !p.IsClosedBySchedule(now)

# Variants

A Poll carries a tagged Variant instead of a type hierarchy:

  - single_choice: exactly one option per ballot
  - multiple_choice: between 1 and MaxSelect distinct options,
    with MaxSelect clamped to [2, option count]
  - yes_no: exactly one of the fixed yes_<id> / no_<id> options

	err := p.ValidateVoteSelection([]string{"option_poll_1_0"})

# Results Visibility

ShowResults decides when voters see tallies:

	always      - every viewer
	after_vote  - viewers who have voted
	after_close - once ended or past the scheduled end date

# Persistence

Poll implements json.Marshaler with the persisted record shape
(snake_case fields, poll_type, max_selectable_options only for multiple
choice). Legacy records without status or poll_type load as active
single or multiple choice polls.

# Errors

Domain failures are sentinel errors; Reason maps them to stable codes:

	poll.Reason(poll.ErrAlreadyVoted) // "already_voted"
*/
package poll
