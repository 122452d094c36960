package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/moodshot/moodshot/internal/store"
	"github.com/moodshot/moodshot/internal/store/storetest"
)

func makeSqliteStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moodshot.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = s.DB().Close() })
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSqliteStore)
}

func TestSqliteStore_SchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodshot.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := EnsureSchema(s.DB()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	_ = s.DB().Close()
}
