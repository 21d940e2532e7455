// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/poll"
)

// Receipt describes an accepted vote.
type Receipt struct {
	PollID     string
	Selected   []string
	TotalVotes int
}

// CastVote records actor's selection on pollID. Checks run in a fixed
// order and the first failure is returned; nothing is saved unless every
// check passes.
func (e *Engine) CastVote(ctx context.Context, actor Actor, pollID string, optionIDs []string) (Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, p, _, err := e.loadPoll(ctx, pollID)
	if err != nil {
		return Receipt{}, err
	}

	if err := checkVote(p, actor.UserID, optionIDs, e.now()); err != nil {
		e.logger.Warn("vote rejected", "poll_id", pollID, "user_id", actor.UserID, "reason", poll.Reason(err))
		return Receipt{}, err
	}

	selected := make([]string, 0, len(optionIDs))
	for _, id := range optionIDs {
		opt := p.OptionByID(id)
		opt.IncrementVotes()
		selected = append(selected, opt.Text)
	}
	p.AddVotedUser(actor.UserID)

	if err := e.polls.SavePolls(ctx, polls); err != nil {
		return Receipt{}, err
	}

	details := fmt.Sprintf("Voted on poll '%s': %s", p.Title, strings.Join(selected, ", "))
	if len(selected) == 0 {
		details = fmt.Sprintf("Voted on poll '%s' without a selection", p.Title)
	}
	e.record(ctx, audit.ActionVoteCast, actor, details)
	e.logger.Info("vote cast", "poll_id", p.ID, "user_id", actor.UserID, "selections", len(selected))

	return Receipt{PollID: p.ID, Selected: selected, TotalVotes: p.TotalVotes()}, nil
}

func checkVote(p *poll.Poll, userID string, optionIDs []string, now time.Time) error {
	if !p.CanBeVotedOn(now) {
		return poll.ErrPollNotAcceptingVotes
	}
	if !p.IsUserAllowed(userID) {
		return poll.ErrUserNotEligible
	}
	if !p.Settings.AllowMultipleVotes && p.HasUserVoted(userID) {
		return poll.ErrAlreadyVoted
	}
	if len(optionIDs) == 0 {
		if p.Settings.RequiresVote {
			return poll.ErrSelectionRequired
		}
		return nil
	}
	if err := p.ValidateVoteSelection(optionIDs); err != nil {
		return err
	}
	for _, id := range optionIDs {
		if p.OptionByID(id) == nil {
			return fmt.Errorf("%w: %q", poll.ErrOptionNotFound, id)
		}
	}
	return nil
}
