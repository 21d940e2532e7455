// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"time"
)

// Filter narrows a voter's poll listing.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterEnded    Filter = "ended"
	FilterVoted    Filter = "voted"
	FilterNotVoted Filter = "not_voted"
)

// ParseFilter accepts the listing filters. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterEnded, FilterVoted, FilterNotVoted:
		return f, nil
	}
	return "", fmt.Errorf("unknown poll filter %q", s)
}

// Matches reports whether p belongs in the userID's listing under f.
func (f Filter) Matches(p *Poll, userID string, now time.Time) bool {
	switch f {
	case FilterActive:
		return p.CanBeVotedOn(now)
	case FilterEnded:
		return p.Status == StatusEnded || p.IsClosedBySchedule(now)
	case FilterVoted:
		return p.HasUserVoted(userID)
	case FilterNotVoted:
		return !p.HasUserVoted(userID) && p.CanBeVotedOn(now)
	default:
		return true
	}
}

// VisibleTo returns the polls userID may see as a voter, narrowed by f.
func VisibleTo(polls []*Poll, userID string, f Filter, now time.Time) []*Poll {
	visible := []*Poll{}
	for _, p := range polls {
		if !p.IsVisibleToVoters() || !p.IsUserAllowed(userID) {
			continue
		}
		if f.Matches(p, userID, now) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Clone returns a deep copy of p.
func (p *Poll) Clone() *Poll {
	c := *p
	c.Options = append([]Option(nil), p.Options...)
	c.VotedUsers = append([]string(nil), p.VotedUsers...)
	c.Settings.AllowedUsers = append([]string(nil), p.Settings.AllowedUsers...)
	c.Settings.EndDate = cloneTime(p.Settings.EndDate)
	c.StartDate = cloneTime(p.StartDate)
	c.ActualEndDate = cloneTime(p.ActualEndDate)
	return &c
}

// CloneAll deep copies a poll collection.
func CloneAll(polls []*Poll) []*Poll {
	out := make([]*Poll, 0, len(polls))
	for _, p := range polls {
		out = append(out, p.Clone())
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
