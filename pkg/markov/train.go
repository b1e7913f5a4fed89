package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Build tokenizes text on runs of whitespace and returns its chain.
//
// For every position i in [0, n-3] the word at i+2 is appended to the
// continuations of the bigram (words[i], words[i+1]). The last bigram of the
// text has no third word and is therefore only a key if it also occurs
// earlier. Texts with fewer than three tokens yield an empty map.
func Build(text string) *ChainMap {
	words := strings.Fields(text)
	chains := NewChainMap()
	for i := 0; i+2 < len(words); i++ {
		chains.Add(Bigram{Word1: words[i], Word2: words[i+1]}, words[i+2])
	}
	return chains
}

// Builder builds chains from a token stream into any Sink.
type Builder struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewBuilder returns a Builder that splits input with tokenizer. A nil
// tokenizer selects a WhitespaceTokenizer with default settings.
func NewBuilder(tokenizer Tokenizer) *Builder {
	if tokenizer == nil {
		tokenizer = NewWhitespaceTokenizer()
	}
	return &Builder{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Builder. By default, all logs are discarded.
func (b *Builder) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// BuildFrom reads r in a single pass and writes every (bigram, next word) pair
// to sink, exactly as Build would record them. Only a two-token window is held
// in memory. It returns the number of tokens read.
func (b *Builder) BuildFrom(ctx context.Context, r io.Reader, sink Sink) (int, error) {
	stream := b.tokenizer.NewStream(r)

	var window Bigram
	var tokenCount, linkCount int

	for {
		if err := ctx.Err(); err != nil {
			return tokenCount, err
		}

		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return tokenCount, fmt.Errorf("tokenizer error: %w", err)
		}

		if tokenCount >= 2 {
			if err = sink.Append(ctx, window, token.Text); err != nil {
				return tokenCount, fmt.Errorf("failed to append continuation for '%s': %w", window, err)
			}
			linkCount++
		}
		window = window.Shift(token.Text)
		tokenCount++
	}

	b.logger.InfoContext(ctx, "Chain build completed",
		slog.Int("tokens_processed", tokenCount),
		slog.Int("links_recorded", linkCount),
	)

	return tokenCount, nil
}
