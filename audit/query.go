// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 1 << 20
)

// Filter narrows an audit query. Zero fields match everything.
type Filter struct {
	Action Action
	UserID string
	Since  time.Time
	Until  time.Time
	Search string
}

// Page selects a 1-based page of results.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page number and size into range.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the number of entries before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Result is one page of entries, newest first.
type Result struct {
	Entries    []Entry `json:"entries"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

// NewResult assembles a page result from a count and the page's entries.
func NewResult(entries []Entry, total int, page Page) Result {
	if entries == nil {
		entries = []Entry{}
	}
	pages := 0
	if total > 0 {
		pages = (total + page.Size - 1) / page.Size
	}
	return Result{
		Entries:    entries,
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: pages,
	}
}

// Matches reports whether e passes the filter.
func (f Filter) Matches(e Entry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && e.Timestamp.After(f.Until) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(e.Details), q) && !strings.Contains(strings.ToLower(e.Username), q) {
			return false
		}
	}
	return true
}

// Apply filters and paginates an in-memory log stored in append order.
func Apply(entries []Entry, filter Filter, page Page) Result {
	page = page.Normalize()

	matched := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if filter.Matches(entries[i]) {
			matched = append(matched, entries[i])
		}
	}
	// Appends are not guaranteed to arrive in timestamp order across writers.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	start := page.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}
	return NewResult(matched[start:end], total, page)
}
