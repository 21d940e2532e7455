// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

type testEnv struct {
	engine *engine.Engine
	clock  *testutil.Clock
	cfg    cliparse.Config
	admin  models.User
	voter  models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e, clock := testutil.NewTestEngine(t)
	return &testEnv{
		engine: e,
		clock:  clock,
		cfg:    testutil.GetTestConfig(),
		admin:  testutil.UserByName(t, e, "admin"),
		voter:  testutil.UserByName(t, e, "voter"),
	}
}

// as attaches a verified session for u, as SessionGuard would
func as(req *http.Request, u models.User) *http.Request {
	s := auth.Session{UserID: u.ID, Username: u.Username, Role: u.Role}
	return req.WithContext(middleware.WithSession(req.Context(), s))
}

func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}

// createPoll creates a poll through the admin handler and optionally starts it
func (env *testEnv) createPoll(t *testing.T, req models.CreatePollRequest, start bool) models.PollView {
	t.Helper()
	h := NewPollHandler(env.engine)

	w := httptest.NewRecorder()
	h.CreatePoll(w, as(testutil.MakeRequest("POST", "/admin/polls", req, nil), env.admin))
	if w.Code != http.StatusCreated {
		t.Fatalf("CreatePoll status %d: %s", w.Code, w.Body.String())
	}
	var view models.PollView
	testutil.AssertJSON(t, w, &view)

	if start {
		w = httptest.NewRecorder()
		h.StartPoll(w, as(withID(testutil.MakeRequest("POST", "/admin/polls/"+view.ID+"/start", nil, nil), view.ID), env.admin))
		if w.Code != http.StatusOK {
			t.Fatalf("StartPoll status %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertJSON(t, w, &view)
	}
	return view
}

func lunchPoll() models.CreatePollRequest {
	return models.CreatePollRequest{
		Title:   "Lunch",
		Options: []string{"Pizza", "Sushi", "Tacos"},
	}
}

func boolPtr(b bool) *bool { return &b }
