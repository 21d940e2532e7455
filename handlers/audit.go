// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type AuditHandler struct {
	engine *engine.Engine
}

func NewAuditHandler(e *engine.Engine) *AuditHandler {
	return &AuditHandler{engine: e}
}

// ListEntries handles GET /admin/audit-logs
// Query: action, user_id, since, until (RFC 3339), q, page, per_page.
func (h *AuditHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseAuditQuery(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.AuditLog(r.Context(), filter, page)
	if err != nil {
		writeError(w, err, "audit log")
		return
	}

	now := h.engine.Now()
	entries := make([]models.AuditEntryView, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, models.AuditEntryView{
			Action:    string(e.Action),
			UserID:    e.UserID,
			Username:  e.Username,
			Details:   e.Details,
			Timestamp: e.Timestamp,
			When:      humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			IPAddress: e.IPAddress,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuditLogResponse{
		Entries:    entries,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

func parseAuditQuery(q url.Values) (audit.Filter, audit.Page, error) {
	var f audit.Filter
	var p audit.Page

	if s := q.Get("action"); s != "" {
		a, err := audit.ParseAction(s)
		if err != nil {
			return f, p, err
		}
		f.Action = a
	}
	f.UserID = q.Get("user_id")
	f.Search = q.Get("q")

	var err error
	if f.Since, err = parseTime(q, "since"); err != nil {
		return f, p, err
	}
	if f.Until, err = parseTime(q, "until"); err != nil {
		return f, p, err
	}
	if p.Number, err = parseInt(q, "page"); err != nil {
		return f, p, err
	}
	if p.Number > audit.MaxPageNumber {
		return f, p, fmt.Errorf("invalid page: at most %d", audit.MaxPageNumber)
	}
	if p.Size, err = parseInt(q, "per_page"); err != nil {
		return f, p, err
	}
	return f, p.Normalize(), nil
}

func parseTime(q url.Values, key string) (time.Time, error) {
	s := q.Get(key)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected RFC 3339 timestamp", key)
	}
	return t, nil
}

func parseInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: expected a positive integer", key)
	}
	return n, nil
}
