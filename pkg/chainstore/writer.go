package chainstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// linkBatchSize determines how many links are buffered in memory before being
// written to the database in a single batch.
const linkBatchSize = 1000

// chainLink Is a struct used for batching link inserts.
type chainLink struct {
	bigramID int64
	nextWord string
}

// Writer appends links to a Store inside a single transaction. It implements
// markov.Sink. Nothing is visible to the Store's readers until Commit.
type Writer struct {
	store           *Store
	tx              *sql.Tx
	stmtGetOrInsert *sql.Stmt
	stmtInsertLink  *sql.Stmt
	bigramCache     map[markov.Bigram]int64
	batch           []chainLink
	linksWritten    int
	finished        bool
}

// NewWriter begins a transaction and returns a Writer bound to it. The caller
// must call Commit or Rollback.
func (s *Store) NewWriter(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction for writer: %w", err)
	}
	return &Writer{
		store:           s,
		tx:              tx,
		stmtGetOrInsert: tx.StmtContext(ctx, s.stmtGetOrInsertBigram),
		stmtInsertLink:  tx.StmtContext(ctx, s.stmtInsertLink),
		bigramCache:     make(map[markov.Bigram]int64),
		batch:           make([]chainLink, 0, linkBatchSize),
	}, nil
}

// Append records that next followed key.
func (w *Writer) Append(ctx context.Context, key markov.Bigram, next string) error {
	if w.finished {
		return fmt.Errorf("append to finished writer: %w", sql.ErrTxDone)
	}

	bigramID, ok := w.bigramCache[key]
	if !ok {
		if err := w.stmtGetOrInsert.QueryRowContext(ctx, key.Word1, key.Word2).Scan(&bigramID); err != nil {
			return fmt.Errorf("failed to get or insert bigram '%s': %w", key, err)
		}
		w.bigramCache[key] = bigramID
	}

	w.batch = append(w.batch, chainLink{bigramID: bigramID, nextWord: next})
	if len(w.batch) >= linkBatchSize {
		return w.flush(ctx)
	}
	return nil
}

// flush writes the buffered links.
func (w *Writer) flush(ctx context.Context) error {
	for _, link := range w.batch {
		if _, err := w.stmtInsertLink.ExecContext(ctx, link.bigramID, link.nextWord); err != nil {
			return fmt.Errorf("failed during batch insert of link (%d -> %q): %w", link.bigramID, link.nextWord, err)
		}
	}
	w.linksWritten += len(w.batch)
	w.batch = w.batch[:0]
	return nil
}

// Commit writes any buffered links and commits the transaction.
func (w *Writer) Commit(ctx context.Context) error {
	if w.finished {
		return sql.ErrTxDone
	}
	if err := w.flush(ctx); err != nil {
		_ = w.Rollback()
		return err
	}
	w.finished = true
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("could not commit chain: %w", err)
	}

	w.store.logger.InfoContext(ctx, "Chain stored",
		slog.Int("bigrams_written", len(w.bigramCache)),
		slog.Int("links_written", w.linksWritten),
	)
	return nil
}

// Rollback discards everything appended so far. It is safe to call after
// Commit, in which case it does nothing.
func (w *Writer) Rollback() error {
	if w.finished {
		return nil
	}
	w.finished = true
	w.batch = w.batch[:0]
	return w.tx.Rollback()
}
