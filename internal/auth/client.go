package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore keeps the signed-in session between runs.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileSessionStore keeps the session as JSON in a file readable only by
// the owner.
type FileSessionStore struct {
	Path string
}

// Load implements SessionStore. A missing file means signed out.
func (f FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Save implements SessionStore.
func (f FileSessionStore) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(f.Path, data, 0o600)
}

// Clear implements SessionStore.
func (f FileSessionStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session in memory.
type MemorySessionStore struct {
	mu sync.Mutex
	s  *Session
}

// Load implements SessionStore.
func (m *MemorySessionStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

// Save implements SessionStore.
func (m *MemorySessionStore) Save(s *Session) error {
	m.mu.Lock()
	m.s = s
	m.mu.Unlock()
	return nil
}

// Clear implements SessionStore.
func (m *MemorySessionStore) Clear() error {
	return m.Save(nil)
}

// Client is the Provider for a single-user front end: it remembers the
// signed-in session and notifies subscribers when it changes.
type Client struct {
	svc      *Service
	sessions SessionStore

	mu     sync.Mutex
	subs   map[int]func(*Session)
	nextID int
}

var _ Provider = (*Client)(nil)

// NewClient returns a client over svc persisting sessions in sessions.
func NewClient(svc *Service, sessions SessionStore) *Client {
	return &Client{svc: svc, sessions: sessions, subs: make(map[int]func(*Session))}
}

// Service returns the underlying service.
func (c *Client) Service() *Service { return c.svc }

// SignUp implements Provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (SignUpResult, *Session, error) {
	res, sess, err := c.svc.SignUp(ctx, email, password)
	if err != nil || sess == nil {
		return res, sess, err
	}
	return res, sess, c.setSession(sess)
}

// SignInWithPassword implements Provider.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	sess, err := c.svc.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return sess, c.setSession(sess)
}

// Confirm completes an emailed confirmation and signs in.
func (c *Client) Confirm(ctx context.Context, token string) (*Session, error) {
	sess, err := c.svc.Confirm(ctx, token)
	if err != nil {
		return nil, err
	}
	return sess, c.setSession(sess)
}

// SignOut implements Provider.
func (c *Client) SignOut(context.Context) error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.notify(nil)
	return nil
}

// CurrentSession implements Provider. A stored session whose token no
// longer verifies is cleared and reported as signed out.
func (c *Client) CurrentSession(context.Context) (*Session, error) {
	sess, err := c.sessions.Load()
	if err != nil || sess == nil {
		return nil, err
	}
	if _, err := c.svc.Verify(sess.Token); err != nil {
		_ = c.sessions.Clear()
		return nil, nil
	}
	return sess, nil
}

// OnAuthStateChange implements Provider.
func (c *Client) OnAuthStateChange(fn func(*Session)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Client) setSession(s *Session) error {
	if err := c.sessions.Save(s); err != nil {
		return err
	}
	c.notify(s)
	return nil
}

func (c *Client) notify(s *Session) {
	c.mu.Lock()
	fns := make([]func(*Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
