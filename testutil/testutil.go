// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/store"
)

// Now is the fixed instant test engines run at
var Now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		StoreType:        cliparse.StoreMemory,
		SessionSecret:    "test-secret",
		SessionTTL:       12 * time.Hour,
		SeedDefaultUsers: true,
	}
}

// Clock is a settable clock for engines under test
type Clock struct {
	t time.Time
}

func (c *Clock) Now() time.Time { return c.t }

func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// NewTestEngine returns an engine over a fresh memory store, seeded with
// the default admin and voter accounts.
func NewTestEngine(t *testing.T) (*engine.Engine, *Clock) {
	t.Helper()

	clock := &Clock{t: Now}
	e := engine.NewFromStore(store.NewMemory(),
		engine.WithClock(clock.Now),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if _, err := e.EnsureDefaultUsers(context.Background()); err != nil {
		t.Fatalf("Failed to seed users: %v", err)
	}
	return e, clock
}

// CreateTestUser adds an account and returns it
func CreateTestUser(t *testing.T, e *engine.Engine, username, password, role string) models.User {
	t.Helper()

	u, err := e.CreateUser(context.Background(), engine.Actor{Role: models.RoleAdmin}, username, password, role)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// UserByName looks up a seeded or created account
func UserByName(t *testing.T, e *engine.Engine, username string) models.User {
	t.Helper()

	users, err := e.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("Failed to list users: %v", err)
	}
	for _, u := range users {
		if u.Username == username {
			return u
		}
	}
	t.Fatalf("No user named %q", username)
	return models.User{}
}

// AuthHeader signs a session for u and returns it as request headers
func AuthHeader(t *testing.T, e *engine.Engine, cfg cliparse.Config, u models.User) map[string]string {
	t.Helper()

	token, err := auth.IssueSessionToken(auth.Session{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ExpiresAt: e.Now().Add(cfg.SessionTTL),
	}, cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertReason checks the reason code of an error response
func AssertReason(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v. Body: %s", err, w.Body.String())
	}
	if resp.Reason != expected {
		t.Errorf("Expected reason %q, got %q (%s)", expected, resp.Reason, resp.Error)
	}
}
