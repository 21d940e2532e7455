// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
)

type sessionKey struct{}

// AccountLookup returns the current role of userID. ok is false once the
// account no longer exists.
type AccountLookup func(ctx context.Context, userID string) (role string, ok bool, err error)

// SessionGuard authenticates Bearer session tokens
type SessionGuard struct {
	secret string
	now    func() time.Time
	lookup AccountLookup
}

// NewSessionGuard returns a guard verifying tokens signed with secret.
// A nil now uses time.Now.
func NewSessionGuard(secret string, now func() time.Time) *SessionGuard {
	if now == nil {
		now = time.Now
	}
	return &SessionGuard{secret: secret, now: now}
}

// WithAccounts makes the guard check every token against the live account.
// Deleted accounts are rejected and the stored role replaces the token's.
func (g *SessionGuard) WithAccounts(lookup AccountLookup) *SessionGuard {
	g.lookup = lookup
	return g
}

// Require rejects requests without a valid session whose role is one of
// roles. No roles means any signed-in user.
func (g *SessionGuard) Require(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			ReasonResponse(w, http.StatusUnauthorized, "unauthenticated", "Missing bearer token")
			return
		}

		session, err := auth.ParseSessionToken(token, g.secret, g.now())
		if err != nil {
			msg := "Invalid session token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Session expired"
			}
			ReasonResponse(w, http.StatusUnauthorized, "unauthenticated", msg)
			return
		}

		if g.lookup != nil {
			role, ok, err := g.lookup(r.Context(), session.UserID)
			if err != nil {
				slog.Error("account lookup failed", "user_id", session.UserID, "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !ok {
				ReasonResponse(w, http.StatusUnauthorized, "unauthenticated", "Account no longer exists")
				return
			}
			session.Role = role
		}

		if len(roles) > 0 && !slices.Contains(roles, session.Role) {
			slog.Warn("role rejected", "user_id", session.UserID, "role", session.Role, "path", r.URL.Path)
			ReasonResponse(w, http.StatusForbidden, "forbidden", "Insufficient role for this resource")
			return
		}

		next(w, r.WithContext(WithSession(r.Context(), session)))
	}
}

// WithSession stores the session in ctx
func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by Require
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
