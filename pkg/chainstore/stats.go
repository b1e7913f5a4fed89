package chainstore

import (
	"context"

	"github.com/CTAG07/markovtext/pkg/markov"
)

// Stats returns a snapshot of statistics for the stored chain.
func (s *Store) Stats(ctx context.Context) (markov.ChainStats, error) {
	var stats markov.ChainStats
	if err := s.stmtCountBigrams.QueryRowContext(ctx).Scan(&stats.Keys); err != nil {
		return markov.ChainStats{}, err
	}
	if err := s.stmtCountLinks.QueryRowContext(ctx).Scan(&stats.Links); err != nil {
		return markov.ChainStats{}, err
	}
	if err := s.stmtCountDistinct.QueryRowContext(ctx).Scan(&stats.Distinct); err != nil {
		return markov.ChainStats{}, err
	}
	return stats, nil
}
