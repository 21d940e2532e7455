// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestListAuditEntries(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuditHandler(env.engine)

	p := env.createPoll(t, lunchPoll(), true)
	env.clock.Advance(time.Minute)
	testutil.AssertStatus(t, castVote(env, env.voter, p.ID, p.Options[0].ID), http.StatusCreated)
	env.clock.Advance(2 * time.Hour)

	list := func(query string) models.AuditLogResponse {
		t.Helper()
		w := httptest.NewRecorder()
		handler.ListEntries(w, as(testutil.MakeRequest("GET", "/admin/audit-logs"+query, nil, nil), env.admin))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.AuditLogResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	all := list("")
	if all.Total != 3 || all.Page != 1 || all.PageSize != 20 || all.TotalPages != 1 {
		t.Fatalf("page = %+v", all)
	}
	newest := all.Entries[0]
	if newest.Action != "vote_cast" || newest.Username != "voter" || newest.Details != "Voted on poll 'Lunch': Pizza" {
		t.Errorf("newest = %+v", newest)
	}
	if newest.When != "2 hours ago" {
		t.Errorf("When = %q, want %q", newest.When, "2 hours ago")
	}

	if got := list("?action=poll_created"); got.Total != 1 || got.Entries[0].Details != "Created poll 'Lunch'" {
		t.Errorf("action filter = %+v", got)
	}
	if got := list("?user_id=" + env.admin.ID); got.Total != 2 {
		t.Errorf("user filter total = %d, want 2", got.Total)
	}
	if got := list("?q=PIZZA"); got.Total != 1 {
		t.Errorf("search total = %d, want 1", got.Total)
	}
	since := testutil.Now.Add(30 * time.Second).Format(time.RFC3339)
	if got := list("?since=" + since); got.Total != 1 {
		t.Errorf("since total = %d, want 1", got.Total)
	}
	if got := list("?page=2&per_page=2"); len(got.Entries) != 1 || got.TotalPages != 2 || got.Page != 2 {
		t.Errorf("second page = %+v", got)
	}
}

func TestListAuditEntriesBadQuery(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuditHandler(env.engine)

	for _, query := range []string{"?action=poll_archived", "?since=yesterday", "?page=abc", "?per_page=-1", "?page=9223372036854775807", "?page=99999999999999999999"} {
		t.Run(query, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListEntries(w, as(testutil.MakeRequest("GET", "/admin/audit-logs"+query, nil, nil), env.admin))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
