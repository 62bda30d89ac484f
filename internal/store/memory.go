package store

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/mathforest/internal/badges"
)

// Memory is an in-process ProfileStore and UserStore. It backs tests and
// guest play where nothing needs to outlive the process.
type Memory struct {
	mu       sync.Mutex
	profiles map[string]ProfileRecord
	users    map[string]User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]ProfileRecord),
		users:    make(map[string]User),
	}
}

// GetProfile implements ProfileStore.
func (m *Memory) GetProfile(_ context.Context, id string) (*ProfileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyRecord(rec)
	return &out, nil
}

// UpsertProfile implements ProfileStore.
func (m *Memory) UpsertProfile(_ context.Context, rec *ProfileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.UpdatedAt = time.Now().UTC()
	m.profiles[rec.ID] = copyRecord(*rec)
	return nil
}

// CreateUser implements UserStore.
func (m *Memory) CreateUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = NormalizeEmail(u.Email)
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users[u.ID] = *u
	return nil
}

// GetUserByEmail implements UserStore.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// GetUserByID implements UserStore.
func (m *Memory) GetUserByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// ConfirmUser implements UserStore.
func (m *Memory) ConfirmUser(_ context.Context, token string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" {
		return nil, ErrNotFound
	}
	for id, u := range m.users {
		if u.ConfirmToken == token {
			u.Confirmed = true
			u.ConfirmToken = ""
			m.users[id] = u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteUser implements UserStore.
func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func copyRecord(r ProfileRecord) ProfileRecord {
	out := r
	out.SkillLevels = make(map[string]int, len(r.SkillLevels))
	for k, v := range r.SkillLevels {
		out.SkillLevels[k] = v
	}
	out.SkillXP = make(map[string]int, len(r.SkillXP))
	for k, v := range r.SkillXP {
		out.SkillXP[k] = v
	}
	out.BossDefeats = make(map[string]bool, len(r.BossDefeats))
	for k, v := range r.BossDefeats {
		out.BossDefeats[k] = v
	}
	out.Badges = append([]badges.Badge(nil), r.Badges...)
	return out
}
