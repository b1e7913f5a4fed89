package chainstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CTAG07/markovtext/pkg/markov"
)

var _ markov.Chains = (*Store)(nil)

// Len returns the number of bigrams in the store.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.stmtCountBigrams.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count bigrams: %w", err)
	}
	return n, nil
}

// KeyAt returns the i-th bigram in the order it was first written. It returns
// an error wrapping sql.ErrNoRows when i is out of range.
func (s *Store) KeyAt(ctx context.Context, i int) (markov.Bigram, error) {
	var key markov.Bigram
	if i < 0 {
		return key, fmt.Errorf("bigram index %d: %w", i, sql.ErrNoRows)
	}
	if err := s.stmtBigramAt.QueryRowContext(ctx, i).Scan(&key.Word1, &key.Word2); err != nil {
		return markov.Bigram{}, fmt.Errorf("bigram index %d: %w", i, err)
	}
	return key, nil
}

// Next retrieves every word recorded after key, in the order they were
// written and with duplicates kept. If the bigram is not in the store, it
// returns a nil slice.
func (s *Store) Next(ctx context.Context, key markov.Bigram) ([]string, error) {
	rows, err := s.stmtGetNext.QueryContext(ctx, key.Word1, key.Word2)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var words []string
	for rows.Next() {
		var word string
		if err = rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
