// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"math"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/poll"
)

// OptionTally is one option's share of the vote.
type OptionTally struct {
	ID      string
	Text    string
	Votes   int
	Percent float64
}

// Results is the tally of a poll.
type Results struct {
	Poll       *poll.Poll
	TotalVotes int
	Options    []OptionTally
}

// ListPolls returns every poll in stored order.
func (e *Engine) ListPolls(ctx context.Context) ([]*poll.Poll, error) {
	return e.polls.LoadPolls(ctx)
}

// GetPoll returns the poll with id.
func (e *Engine) GetPoll(ctx context.Context, id string) (*poll.Poll, error) {
	_, p, _, err := e.loadPoll(ctx, id)
	return p, err
}

// PollsForVoter returns the polls userID can see, narrowed by filter.
func (e *Engine) PollsForVoter(ctx context.Context, userID string, filter poll.Filter) ([]*poll.Poll, error) {
	polls, err := e.polls.LoadPolls(ctx)
	if err != nil {
		return nil, err
	}
	return poll.VisibleTo(polls, userID, filter, e.now()), nil
}

// GetPollForVoter returns a poll only if userID may see it. Hidden polls
// report ErrPollNotFound.
func (e *Engine) GetPollForVoter(ctx context.Context, userID, id string) (*poll.Poll, error) {
	p, err := e.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsVisibleToVoters() || !p.IsUserAllowed(userID) {
		return nil, poll.ErrPollNotFound
	}
	return p, nil
}

// Results returns the tally. Admins always see it. Voters get
// ErrPollNotFound for polls hidden from them, and ErrResultsHidden while
// the results mode withholds the tally.
func (e *Engine) Results(ctx context.Context, viewer Actor, pollID string) (Results, error) {
	p, err := e.GetPoll(ctx, pollID)
	if err != nil {
		return Results{}, err
	}
	if viewer.IsAdmin() {
		return Tally(p), nil
	}
	if !p.IsVisibleToVoters() || !p.IsUserAllowed(viewer.UserID) {
		return Results{}, poll.ErrPollNotFound
	}
	if !p.ShouldShowResultsToUser(viewer.UserID, e.now()) {
		return Results{}, poll.ErrResultsHidden
	}
	return Tally(p), nil
}

// Tally computes per-option percentages rounded to one decimal.
func Tally(p *poll.Poll) Results {
	total := p.TotalVotes()
	options := make([]OptionTally, 0, len(p.Options))
	for _, o := range p.Options {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(o.Votes)*1000/float64(total)) / 10
		}
		options = append(options, OptionTally{ID: o.ID, Text: o.Text, Votes: o.Votes, Percent: pct})
	}
	return Results{Poll: p, TotalVotes: total, Options: options}
}

// AuditLog returns one page of audit entries, newest first.
func (e *Engine) AuditLog(ctx context.Context, filter audit.Filter, page audit.Page) (audit.Result, error) {
	return e.audit.Query(ctx, filter, page)
}
