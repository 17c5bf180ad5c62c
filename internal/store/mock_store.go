// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/widgetdash/internal/page"
)

type mockSession struct {
	session Session
	values  map[string]string
	uploads map[string]*page.Upload
}

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu       sync.RWMutex
	sessions map[string]*mockSession // keyed by session ID
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		sessions: make(map[string]*mockSession),
	}
}

// CreateSession stores a new session.
func (m *MockStore) CreateSession(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	s := &mockSession{
		session: Session{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		values:  make(map[string]string),
		uploads: make(map[string]*page.Upload),
	}
	m.sessions[s.session.ID] = s

	result := s.session
	return &result, nil
}

// GetSession retrieves a session by ID.
func (m *MockStore) GetSession(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy
	result := s.session
	return &result, nil
}

// LoadState returns a copy of the session's widget state.
func (m *MockStore) LoadState(ctx context.Context, sessionID string) (*page.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}

	state := page.NewState()
	for k, v := range s.values {
		state.Values[k] = v
	}
	for k, up := range s.uploads {
		cp := *up
		state.Uploads[k] = &cp
	}
	return state, nil
}

// SaveValues upserts widget values.
func (m *MockStore) SaveValues(ctx context.Context, sessionID string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}

	for k, v := range values {
		s.values[k] = v
	}
	s.session.UpdatedAt = time.Now().UTC()
	return nil
}

// SaveUpload replaces the upload under key.
func (m *MockStore) SaveUpload(ctx context.Context, sessionID, key string, upload *page.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}

	cp := *upload
	s.uploads[key] = &cp
	s.session.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearUpload removes the upload under key.
func (m *MockStore) ClearUpload(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		delete(s.uploads, key)
	}
	return nil
}

// DeleteSessionsBefore removes sessions not updated since cutoff.
func (m *MockStore) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, s := range m.sessions {
		if s.session.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Close is a no-op.
func (m *MockStore) Close() error {
	return nil
}
