// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// Collection names shared by the file and SQL stores
const (
	pollsCollection = "polls"
	usersCollection = "users"
)

// PollRepository loads and saves the whole poll collection.
type PollRepository interface {
	LoadPolls(ctx context.Context) ([]*poll.Poll, error)
	SavePolls(ctx context.Context, polls []*poll.Poll) error
}

// UserRepository loads and saves the whole user collection.
type UserRepository interface {
	LoadUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
}

// Store bundles every repository behind one backend.
type Store interface {
	PollRepository
	UserRepository
	audit.Repository
	Close() error
}

// Open returns the store for kind: file, memory, sqlite or postgres.
func Open(kind, dataDir, databaseURL string, logger *slog.Logger) (Store, error) {
	switch kind {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(dataDir, logger)
	case "sqlite", "postgres":
		dialect, err := db.ParseDialect(kind)
		if err != nil {
			return nil, err
		}
		conn, err := db.Open(dialect, databaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn, dialect); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return NewSQL(conn, dialect), nil
	}
	return nil, fmt.Errorf("unknown store type %q", kind)
}
