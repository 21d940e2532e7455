// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mustDraft(t *testing.T, kind Kind, texts []string, maxSelect int, settings Settings) *Poll {
	t.Helper()
	p, err := NewDraft("poll_1", "Lunch", "Where to eat", kind, texts, maxSelect, settings, testNow)
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	return p
}

func TestNewDraft(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		texts       []string
		maxSelect   int
		wantErr     error
		wantOptions []string
		wantMax     int
	}{
		{"single choice", KindSingleChoice, []string{"A", "B"}, 0, nil, []string{"option_poll_1_0", "option_poll_1_1"}, 1},
		{"blank texts dropped before indexing", KindSingleChoice, []string{"", "  ", "A", "\t", "B"}, 0, nil, []string{"option_poll_1_0", "option_poll_1_1"}, 1},
		{"single choice without options", KindSingleChoice, []string{" ", ""}, 0, ErrNotEnoughOptions, nil, 0},
		{"multiple choice clamps high max", KindMultipleChoice, []string{"A", "B", "C"}, 10, nil, []string{"option_poll_1_0", "option_poll_1_1", "option_poll_1_2"}, 3},
		{"multiple choice clamps low max", KindMultipleChoice, []string{"A", "B", "C"}, 0, nil, []string{"option_poll_1_0", "option_poll_1_1", "option_poll_1_2"}, 2},
		{"multiple choice needs two options", KindMultipleChoice, []string{"A"}, 2, ErrNotEnoughOptions, nil, 0},
		{"yes no ignores texts", KindYesNo, []string{"Maybe"}, 0, nil, []string{"yes_poll_1", "no_poll_1"}, 1},
		{"unknown kind", Kind("ranked"), []string{"A"}, 0, ErrInvalidKind, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewDraft("poll_1", "Lunch", "", tt.kind, tt.texts, tt.maxSelect, Settings{}, testNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewDraft() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDraft() error = %v", err)
			}
			if p.Status != StatusDraft {
				t.Errorf("Status = %s, want draft", p.Status)
			}
			if len(p.Options) != len(tt.wantOptions) {
				t.Fatalf("got %d options, want %d", len(p.Options), len(tt.wantOptions))
			}
			for i, id := range tt.wantOptions {
				if p.Options[i].ID != id {
					t.Errorf("option %d id = %s, want %s", i, p.Options[i].ID, id)
				}
			}
			if got := p.MaxSelectableOptions(); got != tt.wantMax {
				t.Errorf("MaxSelectableOptions() = %d, want %d", got, tt.wantMax)
			}
		})
	}
}

func TestNewDraft_Validation(t *testing.T) {
	if _, err := NewDraft("p", "   ", "", KindYesNo, nil, 0, Settings{}, testNow); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title error = %v, want %v", err, ErrTitleRequired)
	}
	if _, err := NewDraft("p", "t", "", KindYesNo, nil, 0, Settings{ShowResults: "sometimes"}, testNow); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("bad show mode error = %v, want %v", err, ErrInvalidSettings)
	}

	p := mustDraft(t, KindYesNo, nil, 0, Settings{AllowedUsers: []string{"u1"}})
	if len(p.Settings.AllowedUsers) != 0 {
		t.Errorf("unrestricted poll kept allowed users %v", p.Settings.AllowedUsers)
	}
	if p.Settings.ShowResults != ShowAlways {
		t.Errorf("default show mode = %s, want always", p.Settings.ShowResults)
	}
}

func TestStateMachine(t *testing.T) {
	p := mustDraft(t, KindSingleChoice, []string{"A", "B"}, 0, Settings{})

	if !p.CanBeEdited() {
		t.Error("draft should be editable")
	}
	if p.IsVisibleToVoters() {
		t.Error("draft should be hidden from voters")
	}
	if p.CanBeVotedOn(testNow) {
		t.Error("draft should not accept votes")
	}
	if err := p.End(testNow, false); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("End() on draft error = %v, want %v", err, ErrInvalidTransition)
	}

	if err := p.Start(testNow); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if p.Status != StatusActive || p.StartDate == nil || !p.StartDate.Equal(testNow) {
		t.Errorf("after Start() status=%s start=%v", p.Status, p.StartDate)
	}
	if p.CanBeEdited() {
		t.Error("active poll should not be editable")
	}
	if err := p.Edit("New", "", Settings{}, 0); !errors.Is(err, ErrPollLocked) {
		t.Errorf("Edit() on active error = %v, want %v", err, ErrPollLocked)
	}
	if err := p.Start(testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start() error = %v, want %v", err, ErrInvalidTransition)
	}
	if !p.CanBeVotedOn(testNow) || !p.IsVisibleToVoters() {
		t.Error("active poll should be votable and visible")
	}

	endAt := testNow.Add(time.Hour)
	if err := p.End(endAt, true); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if p.Status != StatusEnded || !p.ActualEndDate.Equal(endAt) || !p.HideAfterEnd {
		t.Errorf("after End() status=%s end=%v hide=%v", p.Status, p.ActualEndDate, p.HideAfterEnd)
	}
	if err := p.End(endAt.Add(time.Hour), false); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second End() error = %v, want %v", err, ErrInvalidTransition)
	}
	if !p.ActualEndDate.Equal(endAt) || !p.HideAfterEnd {
		t.Error("second End() changed the poll")
	}
	if p.IsVisibleToVoters() {
		t.Error("ended hidden poll should not be visible")
	}
	if err := p.Start(testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start() on ended error = %v, want %v", err, ErrInvalidTransition)
	}
}

func TestEndedVisibleUnlessHidden(t *testing.T) {
	p := mustDraft(t, KindYesNo, nil, 0, Settings{})
	p.Start(testNow)
	p.End(testNow, false)
	if !p.IsVisibleToVoters() {
		t.Error("ended poll without hide flag should be visible")
	}
	if p.CanBeVotedOn(testNow) {
		t.Error("ended poll should not accept votes")
	}
}

func TestScheduleClose(t *testing.T) {
	past := testNow.Add(-time.Minute)
	future := testNow.Add(time.Minute)

	p := mustDraft(t, KindYesNo, nil, 0, Settings{EndDate: &past})
	p.Start(testNow.Add(-time.Hour))
	if !p.IsClosedBySchedule(testNow) {
		t.Error("poll past its end date should be closed by schedule")
	}
	if p.CanBeVotedOn(testNow) {
		t.Error("active poll past its end date should not accept votes")
	}

	q := mustDraft(t, KindYesNo, nil, 0, Settings{EndDate: &future})
	q.Start(testNow)
	if q.IsClosedBySchedule(testNow) || !q.CanBeVotedOn(testNow) {
		t.Error("poll before its end date should accept votes")
	}
}

func TestEditDraft(t *testing.T) {
	p := mustDraft(t, KindMultipleChoice, []string{"A", "B", "C"}, 3, Settings{})
	p.Options[0].Votes = 4
	p.VotedUsers = []string{"u1"}

	err := p.Edit(" Dinner ", "later", Settings{Restricted: true, AllowedUsers: []string{"u2", "u2", " "}, ShowResults: ShowAfterVote}, 1)
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if p.Title != "Dinner" || p.Description != "later" {
		t.Errorf("content not updated: %q %q", p.Title, p.Description)
	}
	if p.MaxSelectableOptions() != 2 {
		t.Errorf("max not re-clamped: %d", p.MaxSelectableOptions())
	}
	if len(p.Settings.AllowedUsers) != 1 || p.Settings.AllowedUsers[0] != "u2" {
		t.Errorf("allowed users = %v, want [u2]", p.Settings.AllowedUsers)
	}
	if p.Options[0].Votes != 4 || len(p.VotedUsers) != 1 {
		t.Error("Edit() must preserve options and voted users")
	}
}

func TestIsUserAllowed(t *testing.T) {
	open := mustDraft(t, KindYesNo, nil, 0, Settings{})
	for _, u := range []string{"u1", "u2", ""} {
		if !open.IsUserAllowed(u) {
			t.Errorf("unrestricted poll rejected %q", u)
		}
	}

	restricted := mustDraft(t, KindYesNo, nil, 0, Settings{Restricted: true, AllowedUsers: []string{"u1"}})
	if !restricted.IsUserAllowed("u1") {
		t.Error("restricted poll rejected member")
	}
	if restricted.IsUserAllowed("u2") {
		t.Error("restricted poll allowed non-member")
	}
}

func TestVotedUsersAndTotals(t *testing.T) {
	p := mustDraft(t, KindSingleChoice, []string{"A", "B"}, 0, Settings{})
	p.AddVotedUser("u1")
	p.AddVotedUser("u1")
	if len(p.VotedUsers) != 1 || !p.HasUserVoted("u1") || p.HasUserVoted("u2") {
		t.Errorf("voted users = %v", p.VotedUsers)
	}

	if got := p.OptionByID("option_poll_1_1").IncrementVotes(); got != 1 {
		t.Errorf("IncrementVotes() = %d, want 1", got)
	}
	p.Options[0].IncrementVotes()
	p.Options[0].IncrementVotes()
	if p.TotalVotes() != 3 {
		t.Errorf("TotalVotes() = %d, want 3", p.TotalVotes())
	}
	if p.OptionByID("nope") != nil {
		t.Error("OptionByID() found unknown id")
	}
}

func TestShouldShowResultsToUser(t *testing.T) {
	past := testNow.Add(-time.Minute)

	tests := []struct {
		name  string
		mode  ShowResults
		setup func(p *Poll)
		user  string
		want  bool
	}{
		{"always", ShowAlways, nil, "u1", true},
		{"after vote, not voted", ShowAfterVote, nil, "u1", false},
		{"after vote, voted", ShowAfterVote, func(p *Poll) { p.AddVotedUser("u1") }, "u1", true},
		{"after close, active", ShowAfterClose, nil, "u1", false},
		{"after close, ended", ShowAfterClose, func(p *Poll) { p.End(testNow, false) }, "u1", true},
		{"after close, schedule passed", ShowAfterClose, func(p *Poll) { p.Settings.EndDate = &past }, "u1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustDraft(t, KindYesNo, nil, 0, Settings{ShowResults: tt.mode})
			p.Start(testNow)
			if tt.setup != nil {
				tt.setup(p)
			}
			if got := p.ShouldShowResultsToUser(tt.user, testNow); got != tt.want {
				t.Errorf("ShouldShowResultsToUser() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStripAllowedUser(t *testing.T) {
	a := mustDraft(t, KindYesNo, nil, 0, Settings{Restricted: true, AllowedUsers: []string{"u1", "u2"}})
	a.ID = "a"
	b := mustDraft(t, KindYesNo, nil, 0, Settings{Restricted: true, AllowedUsers: []string{"u2"}})
	b.ID = "b"
	c := mustDraft(t, KindYesNo, nil, 0, Settings{})
	c.ID = "c"

	before := b.Clone()
	affected := StripAllowedUser([]*Poll{a, b, c}, "u1")
	if len(affected) != 1 || affected[0] != "a" {
		t.Errorf("affected = %v, want [a]", affected)
	}
	if len(a.Settings.AllowedUsers) != 1 || a.Settings.AllowedUsers[0] != "u2" {
		t.Errorf("a allowed = %v", a.Settings.AllowedUsers)
	}
	if b.Title != before.Title || len(b.Settings.AllowedUsers) != 1 || !a.Settings.Restricted {
		t.Error("unrelated fields changed")
	}
}

func TestFilters(t *testing.T) {
	active := mustDraft(t, KindYesNo, nil, 0, Settings{})
	active.ID = "active"
	active.Start(testNow)

	voted := mustDraft(t, KindYesNo, nil, 0, Settings{})
	voted.ID = "voted"
	voted.Start(testNow)
	voted.AddVotedUser("u1")

	ended := mustDraft(t, KindYesNo, nil, 0, Settings{})
	ended.ID = "ended"
	ended.Start(testNow)
	ended.End(testNow, false)

	hidden := mustDraft(t, KindYesNo, nil, 0, Settings{})
	hidden.ID = "hidden"
	hidden.Start(testNow)
	hidden.End(testNow, true)

	draft := mustDraft(t, KindYesNo, nil, 0, Settings{})
	draft.ID = "draft"

	restricted := mustDraft(t, KindYesNo, nil, 0, Settings{Restricted: true, AllowedUsers: []string{"u2"}})
	restricted.ID = "restricted"
	restricted.Start(testNow)

	all := []*Poll{active, voted, ended, hidden, draft, restricted}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"active", "voted", "ended"}},
		{FilterActive, []string{"active", "voted"}},
		{FilterEnded, []string{"ended"}},
		{FilterVoted, []string{"voted"}},
		{FilterNotVoted, []string{"active"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := VisibleTo(all, "u1", tt.filter, testNow)
			if len(got) != len(tt.want) {
				t.Fatalf("VisibleTo() returned %d polls, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("poll %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}

	if _, err := ParseFilter("bogus"); err == nil {
		t.Error("ParseFilter() accepted unknown filter")
	}
}

func TestReason(t *testing.T) {
	if got := Reason(ErrAlreadyVoted); got != "already_voted" {
		t.Errorf("Reason() = %q", got)
	}
	if got := Reason(errors.Join(errors.New("ctx"), ErrPollLocked)); got != "poll_locked" {
		t.Errorf("Reason() wrapped = %q", got)
	}
	if got := Reason(errors.New("disk full")); got != "" {
		t.Errorf("Reason() unknown = %q", got)
	}
}
