// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-vote/audit"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// Memory keeps every collection in process. Loads and saves copy, so
// callers never share state with the store.
type Memory struct {
	mu      sync.RWMutex
	polls   []*poll.Poll
	users   []models.User
	entries []audit.Entry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadPolls(ctx context.Context) ([]*poll.Poll, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return poll.CloneAll(m.polls), nil
}

func (m *Memory) SavePolls(ctx context.Context, polls []*poll.Poll) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = poll.CloneAll(polls)
	return nil
}

func (m *Memory) LoadUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.User{}, m.users...), nil
}

func (m *Memory) SaveUsers(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append([]models.User{}, users...)
	return nil
}

func (m *Memory) Append(ctx context.Context, entry audit.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *Memory) Query(ctx context.Context, filter audit.Filter, page audit.Page) (audit.Result, error) {
	if err := ctx.Err(); err != nil {
		return audit.Result{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return audit.Apply(m.entries, filter, page), nil
}

func (m *Memory) Close() error { return nil }
