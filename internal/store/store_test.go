// ABOUTME: Behaviour tests run against both SQLiteStore and MockStore
// ABOUTME: Covers session lifecycle, widget values, uploads and expiry

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/widgetdash/internal/page"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// forEachStore runs fn against every Store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, setupTestStore(t))
	})
	t.Run("mock", func(t *testing.T) {
		fn(t, NewMockStore())
	})
}

func TestStore_CreateAndGetSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		sess, err := s.CreateSession(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, sess.ID)

		got, err := s.GetSession(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
	})
}

func TestStore_GetSession_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetSession(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.LoadState(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_SaveValues(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		sess, err := s.CreateSession(ctx)
		require.NoError(t, err)

		state, err := s.LoadState(ctx, sess.ID)
		require.NoError(t, err)
		assert.Empty(t, state.Values)

		require.NoError(t, s.SaveValues(ctx, sess.ID, map[string]string{"name": "Ada", "age": "30"}))
		require.NoError(t, s.SaveValues(ctx, sess.ID, map[string]string{"age": "31"}))

		state, err = s.LoadState(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "Ada", "age": "31"}, state.Values)
	})
}

func TestStore_SaveValues_UnknownSession(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		err := s.SaveValues(context.Background(), "missing", map[string]string{"a": "b"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		a, err := s.CreateSession(ctx)
		require.NoError(t, err)
		b, err := s.CreateSession(ctx)
		require.NoError(t, err)

		require.NoError(t, s.SaveValues(ctx, a.ID, map[string]string{"name": "Ada"}))

		state, err := s.LoadState(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, state.Values)
	})
}

func TestStore_Uploads(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		sess, err := s.CreateSession(ctx)
		require.NoError(t, err)

		up := &page.Upload{Name: "a.csv", Data: []byte("x\n1\n")}
		require.NoError(t, s.SaveUpload(ctx, sess.ID, "file", up))

		state, err := s.LoadState(ctx, sess.ID)
		require.NoError(t, err)
		require.NotNil(t, state.Upload("file"))
		assert.Equal(t, "a.csv", state.Upload("file").Name)
		assert.Equal(t, []byte("x\n1\n"), state.Upload("file").Data)

		require.NoError(t, s.SaveUpload(ctx, sess.ID, "file", &page.Upload{Name: "b.csv", Data: []byte("y\n")}))
		state, err = s.LoadState(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "b.csv", state.Upload("file").Name)

		require.NoError(t, s.ClearUpload(ctx, sess.ID, "file"))
		state, err = s.LoadState(ctx, sess.ID)
		require.NoError(t, err)
		assert.Nil(t, state.Upload("file"))
	})
}

func TestStore_DeleteSessionsBefore(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		sess, err := s.CreateSession(ctx)
		require.NoError(t, err)
		require.NoError(t, s.SaveValues(ctx, sess.ID, map[string]string{"k": "v"}))

		n, err := s.DeleteSessionsBefore(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		n, err = s.DeleteSessionsBefore(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = s.GetSession(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
