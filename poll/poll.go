// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a poll.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// ShowResults controls when voters may see tallies.
type ShowResults string

const (
	ShowAlways     ShowResults = "always"
	ShowAfterVote  ShowResults = "after_vote"
	ShowAfterClose ShowResults = "after_close"
)

// ParseShowResults validates a results visibility mode. Empty means always.
func ParseShowResults(s string) (ShowResults, error) {
	switch m := ShowResults(s); m {
	case "":
		return ShowAlways, nil
	case ShowAlways, ShowAfterVote, ShowAfterClose:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown show_results_mode %q", ErrInvalidSettings, s)
}

// Settings are editable only while a poll is in draft.
type Settings struct {
	AllowMultipleVotes bool
	ShowResults        ShowResults
	Restricted         bool
	AllowedUsers       []string
	EndDate            *time.Time
	RequiresVote       bool
}

// Poll is a votable question. The variant decides selection rules.
type Poll struct {
	ID          string
	Title       string
	Description string
	Options     []Option
	Settings    Settings
	Variant     Variant

	Status        Status
	CreatedAt     time.Time
	StartDate     *time.Time
	ActualEndDate *time.Time
	HideAfterEnd  bool

	VotedUsers []string
}

// OptionID builds the namespaced id of the index-th text option.
func OptionID(pollID string, index int) string {
	return "option_" + pollID + "_" + strconv.Itoa(index)
}

// YesOptionID is the fixed Yes option id of a yes/no poll.
func YesOptionID(pollID string) string { return "yes_" + pollID }

// NoOptionID is the fixed No option id of a yes/no poll.
func NoOptionID(pollID string) string { return "no_" + pollID }

// BuildOptions turns option texts into options for the given kind. Blank
// texts are dropped before indexing. Yes/no polls ignore texts.
func BuildOptions(pollID string, kind Kind, texts []string) []Option {
	if kind == KindYesNo {
		return []Option{
			{ID: YesOptionID(pollID), Text: "Yes"},
			{ID: NoOptionID(pollID), Text: "No"},
		}
	}

	options := make([]Option, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, Option{ID: OptionID(pollID, len(options)), Text: text})
	}
	return options
}

// NewDraft builds a draft poll with options synthesized for the variant.
// The multiple choice maximum is clamped against the final option count.
func NewDraft(id, title, description string, kind Kind, optionTexts []string, maxSelect int, settings Settings, now time.Time) (*Poll, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	options := BuildOptions(id, kind, optionTexts)

	var variant Variant
	switch kind {
	case KindSingleChoice:
		if len(options) < 1 {
			return nil, fmt.Errorf("%w: single choice polls need at least 1 option", ErrNotEnoughOptions)
		}
		variant = SingleChoice()
	case KindMultipleChoice:
		if len(options) < 2 {
			return nil, fmt.Errorf("%w: multiple choice polls need at least 2 options", ErrNotEnoughOptions)
		}
		variant = MultipleChoice(maxSelect, len(options))
	case KindYesNo:
		variant = YesNo()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	settings, err := normalizeSettings(settings)
	if err != nil {
		return nil, err
	}

	return &Poll{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		Options:     options,
		Settings:    settings,
		Variant:     variant,
		Status:      StatusDraft,
		CreatedAt:   now,
		VotedUsers:  []string{},
	}, nil
}

func normalizeSettings(s Settings) (Settings, error) {
	mode, err := ParseShowResults(string(s.ShowResults))
	if err != nil {
		return Settings{}, err
	}
	s.ShowResults = mode

	allowed := []string{}
	if s.Restricted {
		for _, id := range s.AllowedUsers {
			id = strings.TrimSpace(id)
			if id != "" && !slices.Contains(allowed, id) {
				allowed = append(allowed, id)
			}
		}
	}
	s.AllowedUsers = allowed
	return s, nil
}

// Edit replaces content and settings of a draft poll. Options and voted
// users stay as they are.
func (p *Poll) Edit(title, description string, settings Settings, maxSelect int) error {
	if !p.CanBeEdited() {
		return ErrPollLocked
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	settings, err := normalizeSettings(settings)
	if err != nil {
		return err
	}

	p.Title = title
	p.Description = strings.TrimSpace(description)
	p.Settings = settings
	if p.Variant.Kind == KindMultipleChoice {
		p.Variant = MultipleChoice(maxSelect, len(p.Options))
	}
	return nil
}

// Start moves a draft poll to active.
func (p *Poll) Start(now time.Time) error {
	if p.Status != StatusDraft {
		return fmt.Errorf("%w: cannot start a poll that is %s", ErrInvalidTransition, p.Status)
	}
	p.Status = StatusActive
	p.StartDate = &now
	return nil
}

// End moves an active poll to ended. hideAfterEnd removes it from voter
// listings.
func (p *Poll) End(now time.Time, hideAfterEnd bool) error {
	if p.Status != StatusActive {
		return fmt.Errorf("%w: cannot end a poll that is %s", ErrInvalidTransition, p.Status)
	}
	p.Status = StatusEnded
	p.ActualEndDate = &now
	p.HideAfterEnd = hideAfterEnd
	return nil
}

// IsClosedBySchedule reports whether the scheduled end date has passed.
func (p *Poll) IsClosedBySchedule(now time.Time) bool {
	return p.Settings.EndDate != nil && p.Settings.EndDate.Before(now)
}

// CanBeVotedOn reports whether new votes are accepted at now.
func (p *Poll) CanBeVotedOn(now time.Time) bool {
	return p.Status == StatusActive && !p.IsClosedBySchedule(now)
}

// IsVisibleToVoters hides drafts and ended polls marked hidden.
func (p *Poll) IsVisibleToVoters() bool {
	switch p.Status {
	case StatusDraft:
		return false
	case StatusEnded:
		return !p.HideAfterEnd
	}
	return true
}

// CanBeEdited is true only for drafts.
func (p *Poll) CanBeEdited() bool {
	return p.Status == StatusDraft
}

func (p *Poll) MaxSelectableOptions() int { return p.Variant.MaxSelectableOptions() }

func (p *Poll) AllowsMultipleSelections() bool { return p.Variant.AllowsMultipleSelections() }

func (p *Poll) DisplayName() string { return p.Variant.DisplayName() }

// ValidateVoteSelection checks a non-empty selection against the variant.
func (p *Poll) ValidateVoteSelection(ids []string) error {
	if err := p.Variant.validate(ids, p.Options); err != nil {
		return err
	}
	if p.Variant.Kind == KindYesNo {
		yes, no := YesOptionID(p.ID), NoOptionID(p.ID)
		for _, id := range ids {
			if id != yes && id != no {
				return fmt.Errorf("%w: %q is not a yes/no option", ErrOptionNotFound, id)
			}
		}
	}
	return nil
}

// OptionByID returns the owned option with id, or nil.
func (p *Poll) OptionByID(id string) *Option {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

// TotalVotes sums option tallies.
func (p *Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// IsUserAllowed is true for everyone on unrestricted polls.
func (p *Poll) IsUserAllowed(userID string) bool {
	if !p.Settings.Restricted {
		return true
	}
	return slices.Contains(p.Settings.AllowedUsers, userID)
}

func (p *Poll) HasUserVoted(userID string) bool {
	return slices.Contains(p.VotedUsers, userID)
}

// AddVotedUser records userID once.
func (p *Poll) AddVotedUser(userID string) {
	if !p.HasUserVoted(userID) {
		p.VotedUsers = append(p.VotedUsers, userID)
	}
}

// ShouldShowResultsToUser applies the results visibility mode. A poll
// counts as closed once ended or past its scheduled end.
func (p *Poll) ShouldShowResultsToUser(userID string, now time.Time) bool {
	switch p.Settings.ShowResults {
	case ShowAfterVote:
		return p.HasUserVoted(userID)
	case ShowAfterClose:
		return p.IsClosedBySchedule(now) || p.Status == StatusEnded
	default:
		return true
	}
}

// RemoveAllowedUser drops userID from the allow list. It reports whether
// anything changed.
func (p *Poll) RemoveAllowedUser(userID string) bool {
	i := slices.Index(p.Settings.AllowedUsers, userID)
	if i < 0 {
		return false
	}
	p.Settings.AllowedUsers = slices.Delete(p.Settings.AllowedUsers, i, i+1)
	return true
}

// StripAllowedUser removes userID from every poll's allow list and
// returns the ids of the polls that changed.
func StripAllowedUser(polls []*Poll, userID string) []string {
	affected := []string{}
	for _, p := range polls {
		if p.RemoveAllowedUser(userID) {
			affected = append(affected, p.ID)
		}
	}
	return affected
}

// Find returns the poll with id and its index, or nil and -1.
func Find(polls []*Poll, id string) (*Poll, int) {
	for i, p := range polls {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}
