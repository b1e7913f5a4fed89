package chainstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
)

// SetupSchema initializes the necessary tables in the provided database. It
// is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaBigrams = `
CREATE TABLE IF NOT EXISTS chain_bigrams (
    bigram_id INTEGER PRIMARY KEY,
    word1 TEXT NOT NULL,
    word2 TEXT NOT NULL,
    UNIQUE (word1, word2)
);
`
		schemaLinks = `
CREATE TABLE IF NOT EXISTS chain_links (
    link_id INTEGER PRIMARY KEY,
    bigram_id INTEGER NOT NULL,
    next_word TEXT NOT NULL
);
`
		indexLinks = `CREATE INDEX IF NOT EXISTS chain_links_bigram ON chain_links (bigram_id, link_id);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing. If it fails, this will clean up.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaBigrams); err != nil {
		return fmt.Errorf("could not create bigrams schema: %w", err)
	}

	if _, err = tx.Exec(schemaLinks); err != nil {
		return fmt.Errorf("could not create links schema: %w", err)
	}

	if _, err = tx.Exec(indexLinks); err != nil {
		return fmt.Errorf("could not create links index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store is a SQLite-backed chain. It holds the database connection and
// prepared SQL statements for efficient database interaction.
type Store struct {
	db                    *sql.DB
	stmtCountBigrams      *sql.Stmt
	stmtBigramAt          *sql.Stmt
	stmtGetNext           *sql.Stmt
	stmtCountLinks        *sql.Stmt
	stmtCountDistinct     *sql.Stmt
	stmtGetOrInsertBigram *sql.Stmt
	stmtInsertLink        *sql.Stmt
	logger                *slog.Logger
}

// NewStore creates and returns a new Store on a database prepared with
// SetupSchema. It pre-compiles all necessary SQL statements, returning an
// error if any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	statements := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtCountBigrams, `SELECT COUNT(*) FROM chain_bigrams;`},
		{&s.stmtBigramAt, `SELECT word1, word2 FROM chain_bigrams ORDER BY bigram_id LIMIT 1 OFFSET ?;`},
		{&s.stmtGetNext, `SELECT l.next_word FROM chain_links l JOIN chain_bigrams b ON b.bigram_id = l.bigram_id WHERE b.word1 = ? AND b.word2 = ? ORDER BY l.link_id;`},
		{&s.stmtCountLinks, `SELECT COUNT(*) FROM chain_links;`},
		{&s.stmtCountDistinct, `SELECT COUNT(*) FROM (SELECT DISTINCT bigram_id, next_word FROM chain_links);`},
		{&s.stmtGetOrInsertBigram, `INSERT INTO chain_bigrams (word1, word2) VALUES (?, ?) ON CONFLICT(word1, word2) DO UPDATE SET word1=excluded.word1 RETURNING bigram_id;`},
		{&s.stmtInsertLink, `INSERT INTO chain_links (bigram_id, next_word) VALUES (?, ?);`},
	}

	for _, st := range statements {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not prepare statement %q: %w", st.query, err)
		}
		*st.dst = stmt
	}

	return s, nil
}

// Close releases all prepared SQL statements held by the Store. The database
// itself is left open.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtCountBigrams,
		s.stmtBigramAt,
		s.stmtGetNext,
		s.stmtCountLinks,
		s.stmtCountDistinct,
		s.stmtGetOrInsertBigram,
		s.stmtInsertLink,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Reset deletes every bigram and link so the store can hold a new chain.
// The operation is performed within a transaction.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for reset: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM chain_links"); err != nil {
		return fmt.Errorf("failed to remove links: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM chain_bigrams"); err != nil {
		return fmt.Errorf("failed to remove bigrams: %w", err)
	}

	s.logger.DebugContext(ctx, "Chain store reset")

	return tx.Commit()
}
