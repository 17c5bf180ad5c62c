// ABOUTME: Store interface and data types for widgetdash session persistence
// ABOUTME: Sessions own the widget values and uploads replayed into each rerun

package store

import (
	"context"
	"errors"
	"time"

	"github.com/2389/widgetdash/internal/page"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Session is one browser session's widget state container
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists sessions and their widget state
type Store interface {
	// CreateSession inserts a new session with a fresh id
	CreateSession(ctx context.Context) (*Session, error)

	// GetSession returns ErrNotFound for unknown ids
	GetSession(ctx context.Context, id string) (*Session, error)

	// LoadState returns the widget values and uploads stored for a session
	LoadState(ctx context.Context, sessionID string) (*page.State, error)

	// SaveValues upserts widget values; keys not in values are left alone
	SaveValues(ctx context.Context, sessionID string, values map[string]string) error

	// SaveUpload replaces the upload stored under key
	SaveUpload(ctx context.Context, sessionID, key string, upload *page.Upload) error

	// ClearUpload removes the upload stored under key, if any
	ClearUpload(ctx context.Context, sessionID, key string) error

	// DeleteSessionsBefore removes sessions not updated since cutoff
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}
