// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides session and widget state persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/2389/widgetdash/internal/page"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each in-memory connection is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);

		CREATE TABLE IF NOT EXISTS widget_values (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (session_id, key)
		);

		CREATE TABLE IF NOT EXISTS uploads (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			name TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (session_id, key)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// CreateSession inserts a new session
func (s *SQLiteStore) CreateSession(ctx context.Context) (*Session, error) {
	now := time.Now().UTC().Truncate(time.Second)
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, updated_at) VALUES (?, ?, ?)`,
		sess.ID,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	s.logger.Debug("created session", "id", sess.ID)
	return sess, nil
}

// GetSession retrieves a session by ID.
// Returns ErrNotFound if the session doesn't exist.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var createdAtStr, updatedAtStr string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &createdAtStr, &updatedAtStr)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	sess.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	sess.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &sess, nil
}

// LoadState reads all widget values and uploads for a session
func (s *SQLiteStore) LoadState(ctx context.Context, sessionID string) (*page.State, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	state := page.NewState()

	if err := s.loadValues(ctx, sessionID, state); err != nil {
		return nil, err
	}
	if err := s.loadUploads(ctx, sessionID, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *SQLiteStore) loadValues(ctx context.Context, sessionID string, state *page.State) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM widget_values WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("querying widget values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scanning widget value: %w", err)
		}
		state.Values[key] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating widget values: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadUploads(ctx context.Context, sessionID string, state *page.State) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, name, data FROM uploads WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var up page.Upload
		if err := rows.Scan(&key, &up.Name, &up.Data); err != nil {
			return fmt.Errorf("scanning upload: %w", err)
		}
		state.Uploads[key] = &up
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating uploads: %w", err)
	}
	return nil
}

// SaveValues upserts widget values in a single transaction
func (s *SQLiteStore) SaveValues(ctx context.Context, sessionID string, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if err := touchSession(ctx, tx, sessionID, now); err != nil {
		return err
	}

	for key, value := range values {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO widget_values (session_id, key, value, updated_at)
			VALUES (?, ?, ?, ?)
		`, sessionID, key, value, now)
		if err != nil {
			return fmt.Errorf("saving widget %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing widget values: %w", err)
	}

	s.logger.Debug("saved widget values", "session", sessionID, "count", len(values))
	return nil
}

// SaveUpload stores an uploaded file under key, replacing any previous one
func (s *SQLiteStore) SaveUpload(ctx context.Context, sessionID, key string, upload *page.Upload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if err := touchSession(ctx, tx, sessionID, now); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO uploads (session_id, key, name, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, key, upload.Name, upload.Data, now)
	if err != nil {
		return fmt.Errorf("saving upload %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upload: %w", err)
	}

	s.logger.Debug("saved upload", "session", sessionID, "key", key, "size", len(upload.Data))
	return nil
}

// ClearUpload deletes the upload stored under key
func (s *SQLiteStore) ClearUpload(ctx context.Context, sessionID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM uploads WHERE session_id = ? AND key = ?`, sessionID, key)
	if err != nil {
		return fmt.Errorf("deleting upload: %w", err)
	}
	return nil
}

// DeleteSessionsBefore removes sessions last updated before cutoff.
// Widget values and uploads are removed by cascade.
func (s *SQLiteStore) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted sessions: %w", err)
	}
	return n, nil
}

// touchSession bumps updated_at, returning ErrNotFound for unknown sessions
func touchSession(ctx context.Context, tx *sql.Tx, sessionID, now string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
