// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/poll"
)

type CreatePollInput struct {
	Kind        poll.Kind
	Title       string
	Description string
	Options     []string
	MaxSelect   int
	Settings    poll.Settings
}

// UpdatePollInput replaces a draft's content. A nil MaxSelect keeps the
// current maximum.
type UpdatePollInput struct {
	Title       string
	Description string
	MaxSelect   *int
	Settings    poll.Settings
}

// CreatePoll stores a new draft poll.
func (e *Engine) CreatePoll(ctx context.Context, actor Actor, in CreatePollInput) (*poll.Poll, error) {
	p, err := poll.NewDraft(e.newID("poll"), in.Title, in.Description, in.Kind, in.Options, in.MaxSelect, in.Settings, e.now())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	polls, err := e.polls.LoadPolls(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.polls.SavePolls(ctx, append(polls, p)); err != nil {
		return nil, err
	}

	e.record(ctx, audit.ActionPollCreated, actor, fmt.Sprintf("Created poll '%s'", p.Title))
	e.logger.Info("poll created", "poll_id", p.ID, "poll_type", p.Variant.Kind, "user_id", actor.UserID)
	return p, nil
}

// UpdatePoll edits a draft. Options and voted users are kept.
func (e *Engine) UpdatePoll(ctx context.Context, actor Actor, pollID string, in UpdatePollInput) (*poll.Poll, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, p, _, err := e.loadPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	maxSelect := p.MaxSelectableOptions()
	if in.MaxSelect != nil {
		maxSelect = *in.MaxSelect
	}
	if err := p.Edit(in.Title, in.Description, in.Settings, maxSelect); err != nil {
		e.logger.Warn("poll update rejected", "poll_id", pollID, "status", p.Status, "error", err)
		return nil, err
	}
	if err := e.polls.SavePolls(ctx, polls); err != nil {
		return nil, err
	}

	e.record(ctx, audit.ActionPollUpdated, actor, fmt.Sprintf("Updated poll '%s'", p.Title))
	e.logger.Info("poll updated", "poll_id", p.ID, "user_id", actor.UserID)
	return p, nil
}

// StartPoll opens a draft for voting.
func (e *Engine) StartPoll(ctx context.Context, actor Actor, pollID string) (*poll.Poll, error) {
	return e.transition(ctx, actor, pollID, audit.ActionPollStarted, "Started", func(p *poll.Poll) error {
		return p.Start(e.now())
	})
}

// EndPoll closes an active poll. hideAfterEnd removes it from voter views.
func (e *Engine) EndPoll(ctx context.Context, actor Actor, pollID string, hideAfterEnd bool) (*poll.Poll, error) {
	return e.transition(ctx, actor, pollID, audit.ActionPollEnded, "Ended", func(p *poll.Poll) error {
		return p.End(e.now(), hideAfterEnd)
	})
}

func (e *Engine) transition(ctx context.Context, actor Actor, pollID string, action audit.Action, verb string, apply func(*poll.Poll) error) (*poll.Poll, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, p, _, err := e.loadPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if err := apply(p); err != nil {
		e.logger.Warn("poll transition rejected", "poll_id", pollID, "action", action, "status", p.Status, "error", err)
		return nil, err
	}
	if err := e.polls.SavePolls(ctx, polls); err != nil {
		return nil, err
	}

	e.record(ctx, action, actor, fmt.Sprintf("%s poll '%s'", verb, p.Title))
	e.logger.Info("poll "+strings.ToLower(verb), "poll_id", p.ID, "user_id", actor.UserID)
	return p, nil
}

// DeletePoll removes a poll in any state and returns its title.
func (e *Engine) DeletePoll(ctx context.Context, actor Actor, pollID string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, p, i, err := e.loadPoll(ctx, pollID)
	if err != nil {
		return "", err
	}
	if err := e.polls.SavePolls(ctx, slices.Delete(polls, i, i+1)); err != nil {
		return "", err
	}

	e.record(ctx, audit.ActionPollDeleted, actor, fmt.Sprintf("Deleted poll '%s'", p.Title))
	e.logger.Info("poll deleted", "poll_id", p.ID, "user_id", actor.UserID)
	return p.Title, nil
}
