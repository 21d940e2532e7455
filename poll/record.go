// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"encoding/json"
	"fmt"
	"time"
)

// record is the persisted shape of a poll. Pointer fields distinguish
// "absent" from zero so legacy files get the historical defaults.
type record struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Options              []Option    `json:"options"`
	AllowMultipleVotes   *bool       `json:"allow_multiple_votes,omitempty"`
	ShowResultsMode      ShowResults `json:"show_results_mode,omitempty"`
	IsRestricted         bool        `json:"is_restricted"`
	AllowedUsers         []string    `json:"allowed_users"`
	EndDate              *time.Time  `json:"end_date"`
	VotedUsers           []string    `json:"voted_users"`
	RequiresVote         *bool       `json:"requires_vote,omitempty"`
	PollType             Kind        `json:"poll_type,omitempty"`
	Status               Status      `json:"status,omitempty"`
	StartDate            *time.Time  `json:"start_date"`
	ActualEndDate        *time.Time  `json:"actual_end_date"`
	HideAfterEnd         bool        `json:"hide_after_end"`
	MaxSelectableOptions *int        `json:"max_selectable_options,omitempty"`
	CreatedAt            *time.Time  `json:"created_at,omitempty"`
}

// MarshalJSON writes the persisted poll record.
func (p *Poll) MarshalJSON() ([]byte, error) {
	allowMultiple := p.Settings.AllowMultipleVotes
	requiresVote := p.Settings.RequiresVote

	r := record{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Options:            nonNilOptions(p.Options),
		AllowMultipleVotes: &allowMultiple,
		ShowResultsMode:    p.Settings.ShowResults,
		IsRestricted:       p.Settings.Restricted,
		AllowedUsers:       nonNil(p.Settings.AllowedUsers),
		EndDate:            p.Settings.EndDate,
		VotedUsers:         nonNil(p.VotedUsers),
		RequiresVote:       &requiresVote,
		PollType:           p.Variant.Kind,
		Status:             p.Status,
		StartDate:          p.StartDate,
		ActualEndDate:      p.ActualEndDate,
		HideAfterEnd:       p.HideAfterEnd,
	}
	if p.Variant.Kind == KindMultipleChoice {
		max := p.Variant.MaxSelect
		r.MaxSelectableOptions = &max
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		r.CreatedAt = &created
	}
	return json.Marshal(r)
}

// UnmarshalJSON reads a persisted poll record, filling defaults for
// records written before poll types and lifecycle states existed.
func (p *Poll) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	kind := r.PollType
	if kind == "" {
		kind = KindSingleChoice
		if r.MaxSelectableOptions != nil && *r.MaxSelectableOptions > 1 {
			kind = KindMultipleChoice
		}
	}
	kind, err := ParseKind(string(kind))
	if err != nil {
		return fmt.Errorf("poll %s: %w", r.ID, err)
	}

	var variant Variant
	switch kind {
	case KindMultipleChoice:
		max := 2
		if r.MaxSelectableOptions != nil {
			max = *r.MaxSelectableOptions
		}
		variant = MultipleChoice(max, len(r.Options))
	case KindYesNo:
		variant = YesNo()
	default:
		variant = SingleChoice()
	}

	mode, err := ParseShowResults(string(r.ShowResultsMode))
	if err != nil {
		return fmt.Errorf("poll %s: %w", r.ID, err)
	}

	status := r.Status
	switch status {
	case "":
		status = StatusActive
	case StatusDraft, StatusActive, StatusEnded:
	default:
		return fmt.Errorf("poll %s: unknown status %q", r.ID, status)
	}

	*p = Poll{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Options:     nonNilOptions(r.Options),
		Settings: Settings{
			AllowMultipleVotes: boolOr(r.AllowMultipleVotes, true),
			ShowResults:        mode,
			Restricted:         r.IsRestricted,
			AllowedUsers:       nonNil(r.AllowedUsers),
			EndDate:            r.EndDate,
			RequiresVote:       boolOr(r.RequiresVote, true),
		},
		Variant:       variant,
		Status:        status,
		StartDate:     r.StartDate,
		ActualEndDate: r.ActualEndDate,
		HideAfterEnd:  r.HideAfterEnd,
		VotedUsers:    nonNil(r.VotedUsers),
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	}
	return nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilOptions(o []Option) []Option {
	if o == nil {
		return []Option{}
	}
	return o
}
