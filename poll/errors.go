// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import "errors"

var (
	ErrPollNotFound          = errors.New("poll not found")
	ErrPollLocked            = errors.New("poll can only be edited while in draft")
	ErrPollNotAcceptingVotes = errors.New("poll is not accepting votes")
	ErrUserNotEligible       = errors.New("user is not allowed to vote on this poll")
	ErrAlreadyVoted          = errors.New("user has already voted on this poll")
	ErrSelectionRequired     = errors.New("at least one option must be selected")
	ErrInvalidSelection      = errors.New("invalid option selection")
	ErrOptionNotFound        = errors.New("option not found")
	ErrInvalidTransition     = errors.New("invalid poll status transition")
	ErrTitleRequired         = errors.New("poll title is required")
	ErrNotEnoughOptions      = errors.New("poll does not have enough options")
	ErrInvalidSettings       = errors.New("invalid poll settings")
	ErrInvalidKind           = errors.New("unknown poll type")
	ErrResultsHidden         = errors.New("results are not visible yet")
)

var reasons = []struct {
	err  error
	code string
}{
	{ErrPollNotFound, "poll_not_found"},
	{ErrPollLocked, "poll_locked"},
	{ErrPollNotAcceptingVotes, "poll_not_accepting_votes"},
	{ErrUserNotEligible, "user_not_eligible"},
	{ErrAlreadyVoted, "already_voted"},
	{ErrSelectionRequired, "selection_required"},
	{ErrInvalidSelection, "invalid_selection"},
	{ErrOptionNotFound, "option_not_found"},
	{ErrInvalidTransition, "invalid_transition"},
	{ErrTitleRequired, "title_required"},
	{ErrNotEnoughOptions, "not_enough_options"},
	{ErrInvalidSettings, "invalid_settings"},
	{ErrInvalidKind, "invalid_poll_type"},
	{ErrResultsHidden, "results_hidden"},
}

// Reason returns the stable reason code for a poll domain error, or ""
// when err is not one.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return ""
}
