package chainstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/markovtext/pkg/markov"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database in a temp dir and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestDB(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=-4000")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// setupTestStoreWithText is a convenience helper that also stores the chain of text.
func setupTestStoreWithText(t *testing.T, text string) (context.Context, *Store) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	w, err := s.NewWriter(ctx)
	if err != nil {
		t.Fatalf("setup: NewWriter() failed: %v", err)
	}
	if _, err = markov.NewBuilder(nil).BuildFrom(ctx, strings.NewReader(text), w); err != nil {
		_ = w.Rollback()
		t.Fatalf("setup: BuildFrom() failed: %v", err)
	}
	if err = w.Commit(ctx); err != nil {
		t.Fatalf("setup: Commit() failed: %v", err)
	}
	return ctx, s
}

// scriptedChooser replays a fixed list of picks, then falls back to 0.
type scriptedChooser struct {
	picks []int
	calls int
}

func (c *scriptedChooser) IntN(n int) int {
	defer func() { c.calls++ }()
	if c.calls < len(c.picks) && c.picks[c.calls] < n {
		return c.picks[c.calls]
	}
	return 0
}
