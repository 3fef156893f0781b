package helpers

import (
	"testing"

	"github.com/campusgo/assistant/store"
)

// NewTestSQLiteStore creates an in-memory SQLite store for testing.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}
