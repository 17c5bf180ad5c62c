// Package store persists widgetdash sessions and their widget state.
//
// # Architecture
//
// Store is the interface the web host depends on. Two implementations:
//
//   - SQLiteStore: modernc.org/sqlite, WAL mode, schema created on open
//   - MockStore: in-memory, for handler tests
//
// # Data Models
//
//   - Session: one browser session, identified by a uuid cookie value
//   - widget_values: (session, widget key) -> current value as text
//   - uploads: (session, widget key) -> file name and raw bytes
//
// Widget values and uploads are deleted with their session. Sessions idle
// longer than the configured TTL are removed by DeleteSessionsBefore.
//
// # Usage
//
//	s, err := store.NewSQLiteStore("/var/lib/widgetdash/sessions.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	sess, _ := s.CreateSession(ctx)
//	_ = s.SaveValues(ctx, sess.ID, map[string]string{"enter_your_name": "Ada"})
//	state, _ := s.LoadState(ctx, sess.ID)
package store
