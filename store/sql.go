// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// SQL keeps the poll and user collections as JSON documents in the
// collection table and the audit log as rows.
type SQL struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

// NewSQL wraps an open connection whose schema already exists.
func NewSQL(conn *sql.DB, dialect db.Dialect) *SQL {
	return &SQL{db: conn, dialect: dialect, now: time.Now}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func (s *SQL) LoadPolls(ctx context.Context) ([]*poll.Poll, error) {
	polls := []*poll.Poll{}
	if err := s.loadCollection(ctx, pollsCollection, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

func (s *SQL) SavePolls(ctx context.Context, polls []*poll.Poll) error {
	if polls == nil {
		polls = []*poll.Poll{}
	}
	return s.saveCollection(ctx, pollsCollection, polls)
}

func (s *SQL) LoadUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.loadCollection(ctx, usersCollection, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQL) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return s.saveCollection(ctx, usersCollection, users)
}

func (s *SQL) loadCollection(ctx context.Context, name string, v any) error {
	var payload string
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT payload FROM collection WHERE name = ?`), name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s *SQL) saveCollection(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO collection (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`), name, string(payload), toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (s *SQL) Append(ctx context.Context, entry audit.Entry) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO audit_log (action, user_id, username, details, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), string(entry.Action), entry.UserID, entry.Username, entry.Details, entry.IPAddress, toMillis(entry.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (s *SQL) Query(ctx context.Context, filter audit.Filter, page audit.Page) (audit.Result, error) {
	page = page.Normalize()
	where, args := auditWhere(filter)

	var total int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM audit_log`+where), args...).Scan(&total)
	if err != nil {
		return audit.Result{}, fmt.Errorf("failed to count audit entries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT action, user_id, username, details, ip_address, created_at
		FROM audit_log`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`), append(args, page.Size, page.Offset())...)
	if err != nil {
		return audit.Result{}, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []audit.Entry{}
	for rows.Next() {
		var (
			e       audit.Entry
			action  string
			created int64
		)
		if err := rows.Scan(&action, &e.UserID, &e.Username, &e.Details, &e.IPAddress, &created); err != nil {
			return audit.Result{}, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Action = audit.Action(action)
		e.Timestamp = fromMillis(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return audit.Result{}, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return audit.NewResult(entries, total, page), nil
}

// auditWhere builds the WHERE clause for filter with ? placeholders.
func auditWhere(filter audit.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, toMillis(filter.Since))
	}
	if !filter.Until.IsZero() {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, toMillis(filter.Until))
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		clauses = append(clauses, `(LOWER(details) LIKE ? ESCAPE '\' OR LOWER(username) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *SQL) rebind(query string) string {
	return db.Rebind(s.dialect, query)
}

func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
