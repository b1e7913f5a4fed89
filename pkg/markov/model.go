package markov

import (
	"context"
	"fmt"
)

// Bigram is an ordered pair of consecutive tokens. It is comparable and is
// used as the lookup key of a chain.
type Bigram struct {
	Word1 string
	Word2 string
}

// String returns the two words joined by a single space.
func (b Bigram) String() string {
	return b.Word1 + " " + b.Word2
}

// Shift returns the bigram that follows b when next is appended to the text.
func (b Bigram) Shift(next string) Bigram {
	return Bigram{Word1: b.Word2, Word2: next}
}

// ChainMap is an in-memory chain: every bigram seen in the source text, except
// a final one that never recurs, mapped to the words that followed it.
//
// Keys remember the order in which they were first inserted so that a walk
// driven by a deterministic Chooser is reproducible. A ChainMap is not safe
// for concurrent mutation; once built it is only read.
type ChainMap struct {
	links map[Bigram][]string
	order []Bigram
}

// NewChainMap returns an empty ChainMap.
func NewChainMap() *ChainMap {
	return &ChainMap{links: make(map[Bigram][]string)}
}

// Add records that next followed key, creating the key on first sight.
func (m *ChainMap) Add(key Bigram, next string) {
	list, ok := m.links[key]
	if !ok {
		m.order = append(m.order, key)
	}
	m.links[key] = append(list, next)
}

// Append implements Sink. It never fails.
func (m *ChainMap) Append(_ context.Context, key Bigram, next string) error {
	m.Add(key, next)
	return nil
}

// Size returns the number of keys in the map.
func (m *ChainMap) Size() int {
	return len(m.order)
}

// Keys returns a copy of the keys in first-insertion order.
func (m *ChainMap) Keys() []Bigram {
	keys := make([]Bigram, len(m.order))
	copy(keys, m.order)
	return keys
}

// Continuations returns the words recorded after key and whether key is present.
// The returned slice must not be modified.
func (m *ChainMap) Continuations(key Bigram) ([]string, bool) {
	list, ok := m.links[key]
	return list, ok
}

// Len implements Chains.
func (m *ChainMap) Len(_ context.Context) (int, error) {
	return len(m.order), nil
}

// KeyAt implements Chains.
func (m *ChainMap) KeyAt(_ context.Context, i int) (Bigram, error) {
	if i < 0 || i >= len(m.order) {
		return Bigram{}, fmt.Errorf("key index %d out of range [0, %d)", i, len(m.order))
	}
	return m.order[i], nil
}

// Next implements Chains.
func (m *ChainMap) Next(_ context.Context, key Bigram) ([]string, error) {
	return m.links[key], nil
}
