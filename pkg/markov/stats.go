package markov

// ChainStats holds aggregated statistics for a single chain.
type ChainStats struct {
	Keys     int // The number of distinct bigrams with at least one continuation.
	Links    int // The number of recorded continuations, duplicates included.
	Distinct int // The number of distinct bigram->word transitions.
}

// Stats returns a snapshot of statistics for the map.
func (m *ChainMap) Stats() ChainStats {
	stats := ChainStats{Keys: len(m.order)}
	seen := make(map[string]struct{})
	for _, key := range m.order {
		list := m.links[key]
		stats.Links += len(list)
		clear(seen)
		for _, word := range list {
			seen[word] = struct{}{}
		}
		stats.Distinct += len(seen)
	}
	return stats
}
