package markov

import (
	"context"
	"io"
)

// Token represents a single tokenized unit of text.
type Token struct {
	Text string
}

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens. This allows the chain building logic to be independent of the
// specific tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// Chains is the read side of a chain map. The generator only ever reads
// chains through this interface, so any storage can back a walk.
type Chains interface {
	// Len returns the number of distinct bigrams that have continuations.
	Len(ctx context.Context) (int, error)
	// KeyAt returns the i-th bigram in first-insertion order.
	KeyAt(ctx context.Context, i int) (Bigram, error)
	// Next returns every continuation recorded for key, duplicates included.
	// It returns a nil slice and no error when key is absent.
	Next(ctx context.Context, key Bigram) ([]string, error)
}

// Sink receives the (bigram, next word) pairs produced while building a chain.
type Sink interface {
	Append(ctx context.Context, key Bigram, next string) error
}
