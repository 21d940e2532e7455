// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
	"github.com/danielhkuo/quickly-vote/store"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameRequired      = errors.New("username is required")
	ErrPasswordRequired      = errors.New("password is required")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidRole           = errors.New("invalid role")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)

var reasons = []struct {
	err  error
	code string
}{
	{ErrUserNotFound, "user_not_found"},
	{ErrUsernameRequired, "username_required"},
	{ErrPasswordRequired, "password_required"},
	{ErrUsernameAlreadyExists, "username_already_exists"},
	{ErrInvalidRole, "invalid_role"},
	{ErrCannotDeleteSelf, "cannot_delete_self"},
	{ErrInvalidCredentials, "invalid_credentials"},
}

// Reason returns the stable reason code for any domain error, or "".
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return poll.Reason(err)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID    string
	Username  string
	Role      string
	IPAddress string
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

func (a Actor) audit() audit.Actor {
	return audit.Actor{UserID: a.UserID, Username: a.Username, IPAddress: a.IPAddress}
}

// Engine runs every poll, vote, and account operation. Mutations are
// serialized by one writer lock because each save replaces a whole
// collection. Reads go straight to the repositories.
type Engine struct {
	polls  store.PollRepository
	users  store.UserRepository
	audit  *audit.Recorder
	now    func() time.Time
	newID  func(prefix string) string
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for lifecycle dates, schedule
// checks, and audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithIDGenerator replaces auth.NewID for poll and user ids.
func WithIDGenerator(newID func(prefix string) string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(polls store.PollRepository, users store.UserRepository, auditRepo audit.Repository, opts ...Option) *Engine {
	e := &Engine{
		polls: polls,
		users: users,
		now:   time.Now,
		newID: auth.NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.audit = audit.NewRecorder(auditRepo, e.now, e.logger)
	return e
}

// NewFromStore wires every repository to one backend.
func NewFromStore(s store.Store, opts ...Option) *Engine {
	return New(s, s, s, opts...)
}

// Now is the engine clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// record appends an audit entry after a successful save. A failure is
// logged by the recorder and not returned.
func (e *Engine) record(ctx context.Context, action audit.Action, actor Actor, details string) {
	_ = e.audit.Record(ctx, action, actor.audit(), details)
}

// loadPoll loads the collection and finds id in it.
func (e *Engine) loadPoll(ctx context.Context, id string) ([]*poll.Poll, *poll.Poll, int, error) {
	polls, err := e.polls.LoadPolls(ctx)
	if err != nil {
		return nil, nil, -1, err
	}
	p, i := poll.Find(polls, id)
	if p == nil {
		return nil, nil, -1, poll.ErrPollNotFound
	}
	return polls, p, i, nil
}
