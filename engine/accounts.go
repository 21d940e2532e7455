// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// Accounts created on an empty user store
var defaultUsers = []struct {
	username, password, role string
}{
	{"admin", "admin123", models.RoleAdmin},
	{"voter", "voter123", models.RoleVoter},
}

// ListUsers returns every account in stored order.
func (e *Engine) ListUsers(ctx context.Context) ([]models.User, error) {
	return e.users.LoadUsers(ctx)
}

// GetUser returns the account with id.
func (e *Engine) GetUser(ctx context.Context, id string) (models.User, error) {
	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	i := indexUser(users, id)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	return users[i], nil
}

// CreateUser adds an account with a bcrypt password hash.
func (e *Engine) CreateUser(ctx context.Context, actor Actor, username, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateAccount(username, role); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, ErrPasswordRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	if usernameTaken(users, username, "") {
		return models.User{}, ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{ID: e.newID("user"), Username: username, PasswordHash: hash, Role: role}

	if err := e.users.SaveUsers(ctx, append(users, user)); err != nil {
		return models.User{}, err
	}

	e.record(ctx, audit.ActionUserCreated, actor, fmt.Sprintf("Created user '%s' with role %s", user.Username, user.Role))
	e.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// UpdateUser changes username and role. An empty password keeps the
// current hash.
func (e *Engine) UpdateUser(ctx context.Context, actor Actor, id, username, password, role string) (models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateAccount(username, role); err != nil {
		return models.User{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	i := indexUser(users, id)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	if usernameTaken(users, username, id) {
		return models.User{}, ErrUsernameAlreadyExists
	}

	user := users[i]
	user.Username = username
	user.Role = role
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = hash
	}
	users[i] = user

	if err := e.users.SaveUsers(ctx, users); err != nil {
		return models.User{}, err
	}

	e.record(ctx, audit.ActionUserUpdated, actor, fmt.Sprintf("Updated user '%s'", user.Username))
	e.logger.Info("user updated", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// DeleteUser removes an account and strips it from every poll allow
// list. It returns the ids of the polls that changed.
func (e *Engine) DeleteUser(ctx context.Context, actor Actor, id string) ([]string, error) {
	if id == actor.UserID {
		return nil, ErrCannotDeleteSelf
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	i := indexUser(users, id)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	removed := users[i]

	polls, err := e.polls.LoadPolls(ctx)
	if err != nil {
		return nil, err
	}
	affected := poll.StripAllowedUser(polls, id)

	if err := e.users.SaveUsers(ctx, slices.Delete(users, i, i+1)); err != nil {
		return nil, err
	}
	if len(affected) > 0 {
		if err := e.polls.SavePolls(ctx, polls); err != nil {
			return nil, fmt.Errorf("user deleted but allow lists not updated: %w", err)
		}
	}

	e.record(ctx, audit.ActionUserDeleted, actor, fmt.Sprintf("Deleted user '%s'", removed.Username))
	e.logger.Info("user deleted", "user_id", removed.ID, "affected_polls", len(affected))
	return affected, nil
}

// Authenticate checks credentials and records the attempt.
func (e *Engine) Authenticate(ctx context.Context, username, password, ip string) (models.User, error) {
	username = strings.TrimSpace(username)

	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Username == username && auth.CheckPassword(u.PasswordHash, password) {
			actor := Actor{UserID: u.ID, Username: u.Username, Role: u.Role, IPAddress: ip}
			e.record(ctx, audit.ActionUserLogin, actor, "Logged in")
			e.logger.Info("user logged in", "user_id", u.ID)
			return u, nil
		}
	}

	e.record(ctx, audit.ActionLoginFailed, Actor{Username: username, IPAddress: ip}, fmt.Sprintf("Failed login for '%s'", username))
	e.logger.Warn("login failed", "username", username, "ip", ip)
	return models.User{}, ErrInvalidCredentials
}

// EnsureDefaultUsers seeds the admin and voter accounts when no users
// exist. It reports whether it created them.
func (e *Engine) EnsureDefaultUsers(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	users, err := e.users.LoadUsers(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}

	for _, d := range defaultUsers {
		hash, err := auth.HashPassword(d.password)
		if err != nil {
			return false, err
		}
		users = append(users, models.User{ID: e.newID("user"), Username: d.username, PasswordHash: hash, Role: d.role})
	}
	if err := e.users.SaveUsers(ctx, users); err != nil {
		return false, err
	}

	e.logger.Info("default users created", "count", len(users))
	return true, nil
}

func validateAccount(username, role string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if !models.IsValidRole(role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return nil
}

func indexUser(users []models.User, id string) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
}

func usernameTaken(users []models.User, username, exceptID string) bool {
	return slices.ContainsFunc(users, func(u models.User) bool {
		return u.Username == username && u.ID != exceptID
	})
}
