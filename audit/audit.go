// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Action names one auditable event.
type Action string

const (
	ActionUserLogin   Action = "user_login"
	ActionLoginFailed Action = "login_failed"
	ActionPollCreated Action = "poll_created"
	ActionPollUpdated Action = "poll_updated"
	ActionPollStarted Action = "poll_started"
	ActionPollEnded   Action = "poll_ended"
	ActionPollDeleted Action = "poll_deleted"
	ActionVoteCast    Action = "vote_cast"
	ActionUserCreated Action = "user_created"
	ActionUserUpdated Action = "user_updated"
	ActionUserDeleted Action = "user_deleted"
)

// Actions lists the full vocabulary in display order.
var Actions = []Action{
	ActionUserLogin, ActionLoginFailed,
	ActionPollCreated, ActionPollUpdated, ActionPollStarted, ActionPollEnded, ActionPollDeleted,
	ActionVoteCast,
	ActionUserCreated, ActionUserUpdated, ActionUserDeleted,
}

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown audit action %q", s)
}

// UnknownIP is recorded when the caller has no client address.
const UnknownIP = "unknown"

// Actor identifies who performed an action and from where.
type Actor struct {
	UserID    string
	Username  string
	IPAddress string
}

// Entry is one immutable audit record.
type Entry struct {
	Action    Action    `json:"action"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip_address"`
}

// Repository persists audit entries. Entries are never updated or removed.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	Query(ctx context.Context, filter Filter, page Page) (Result, error)
}

// Recorder stamps and appends audit entries.
type Recorder struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewRecorder returns a Recorder writing to repo. A nil now uses
// time.Now; a nil logger uses slog.Default().
func NewRecorder(repo Repository, now func() time.Time, logger *slog.Logger) *Recorder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, now: now, logger: logger}
}

// Record appends an entry for action performed by actor.
func (r *Recorder) Record(ctx context.Context, action Action, actor Actor, details string) error {
	ip := strings.TrimSpace(actor.IPAddress)
	if ip == "" {
		ip = UnknownIP
	}

	entry := Entry{
		Action:    action,
		UserID:    actor.UserID,
		Username:  actor.Username,
		Details:   details,
		Timestamp: r.now().UTC(),
		IPAddress: ip,
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Error("failed to append audit entry", "action", action, "user_id", actor.UserID, "error", err)
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Query proxies to the repository.
func (r *Recorder) Query(ctx context.Context, filter Filter, page Page) (Result, error) {
	return r.repo.Query(ctx, filter, page)
}
