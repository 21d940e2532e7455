// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// File names inside the data directory
const (
	PollsFile = "polls.json"
	UsersFile = "users.json"
	AuditFile = "audit_logs.json"
)

// File stores each collection as one JSON document in a directory.
// Missing or unreadable documents load as empty collections.
type File struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewFile creates the data directory if needed
func NewFile(dir string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &File{dir: dir, logger: logger}, nil
}

func (f *File) LoadPolls(ctx context.Context) ([]*poll.Poll, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	return load[*poll.Poll](f, PollsFile)
}

func (f *File) SavePolls(ctx context.Context, polls []*poll.Poll) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if polls == nil {
		polls = []*poll.Poll{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(PollsFile, polls)
}

func (f *File) LoadUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	return load[models.User](f, UsersFile)
}

func (f *File) SaveUsers(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(UsersFile, users)
}

// Append rewrites the whole log file with the entry added. An unreadable
// log is moved aside first.
func (f *File) Append(ctx context.Context, entry audit.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := read[audit.Entry](f, AuditFile)
	if errors.Is(err, errCorrupt) {
		// Keep the unreadable history instead of overwriting it
		if err := f.quarantine(AuditFile); err != nil {
			return err
		}
		entries, err = []audit.Entry{}, nil
	}
	if err != nil {
		return err
	}
	return f.write(AuditFile, append(entries, entry))
}

func (f *File) Query(ctx context.Context, filter audit.Filter, page audit.Page) (audit.Result, error) {
	if err := ctx.Err(); err != nil {
		return audit.Result{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := load[audit.Entry](f, AuditFile)
	if err != nil {
		return audit.Result{}, err
	}
	return audit.Apply(entries, filter, page), nil
}

func (f *File) Close() error { return nil }

var errCorrupt = errors.New("unreadable data file")

// load decodes the collection in name. A missing or corrupt file is an
// empty collection.
func load[T any](f *File, name string) ([]T, error) {
	items, err := read[T](f, name)
	if errors.Is(err, errCorrupt) {
		f.logger.Warn("ignoring unreadable data file", "file", filepath.Join(f.dir, name), "error", err)
		return []T{}, nil
	}
	return items, err
}

// read decodes the collection in name. A missing file is empty; a file
// that does not decode reports errCorrupt.
func read[T any](f *File, name string) ([]T, error) {
	path := filepath.Join(f.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errCorrupt, name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// quarantine renames an unreadable name to name.corrupt-<unix nanos>.
func (f *File) quarantine(name string) error {
	path := filepath.Join(f.dir, name)
	aside := fmt.Sprintf("%s.corrupt-%d", path, time.Now().UnixNano())
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("failed to move aside %s: %w", name, err)
	}
	f.logger.Warn("moved unreadable data file aside", "file", path, "moved_to", aside)
	return nil
}

// write replaces name atomically through a temp file in the same directory.
func (f *File) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
