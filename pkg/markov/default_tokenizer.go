package markov

import (
	"bufio"
	"io"
)

// defaultMaxTokenSize is the longest token the WhitespaceTokenizer accepts
// unless overridden with WithMaxTokenSize.
const defaultMaxTokenSize = 1 << 20

// WhitespaceTokenizer is the default implementation of the Tokenizer interface.
// It splits text on runs of Unicode whitespace and keeps every token exactly
// as written: no case folding, punctuation stays attached to its word.
type WhitespaceTokenizer struct {
	maxTokenSize int
}

// Option Is a function that configures a WhitespaceTokenizer.
type Option func(*WhitespaceTokenizer)

// WithMaxTokenSize sets the largest token, in bytes, the tokenizer will read.
// Longer tokens make the stream fail with bufio.ErrTooLong.
// Default: 1 MiB
func WithMaxTokenSize(n int) Option {
	return func(t *WhitespaceTokenizer) {
		if n > 0 {
			t.maxTokenSize = n
		}
	}
}

// NewWhitespaceTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewWhitespaceTokenizer(opts ...Option) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{
		maxTokenSize: defaultMaxTokenSize,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewStream Returns the stream processor.
func (t *WhitespaceTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	initial := bufio.MaxScanTokenSize
	if initial > t.maxTokenSize {
		initial = t.maxTokenSize
	}
	scanner.Buffer(make([]byte, 0, initial), t.maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &WhitespaceStreamTokenizer{scanner: scanner}
}

// WhitespaceStreamTokenizer is the default implementation of the StreamTokenizer interface.
type WhitespaceStreamTokenizer struct {
	scanner *bufio.Scanner
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *WhitespaceStreamTokenizer) Next() (*Token, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return &Token{Text: s.scanner.Text()}, nil
}
