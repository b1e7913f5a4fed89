package markov

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxWords int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and GenerateStream.
type GenerateOption func(*generateOptions)

// WithMaxWords stops the walk once the output holds n words, even if the
// current bigram still has continuations. A value of 0 or less disables the
// limit, which is the default.
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxWords: 0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Generate walks chains with the process-wide random source and returns the
// generated text. It returns ErrInsufficientInput if chains is empty.
func Generate(chains *ChainMap) (string, error) {
	return NewGenerator(nil).Generate(context.Background(), chains)
}

// Generate picks a starting bigram uniformly among the keys of chains, then
// repeatedly appends a continuation chosen uniformly from the current
// bigram's list until it reaches a bigram that is not a key. The words are
// joined with single spaces; the result always holds at least two words.
func (g *Generator) Generate(ctx context.Context, chains Chains, opts ...GenerateOption) (string, error) {
	options := newGenerateOptions(opts)

	start, err := g.start(ctx, chains)
	if err != nil {
		return "", err
	}

	words := []string{start.Word1, start.Word2}
	err = g.follow(ctx, chains, start, options, func(word string) bool {
		words = append(words, word)
		return true
	})
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// start picks the bigram a walk begins from.
func (g *Generator) start(ctx context.Context, chains Chains) (Bigram, error) {
	keyCount, err := chains.Len(ctx)
	if err != nil {
		return Bigram{}, fmt.Errorf("failed to count bigrams: %w", err)
	}
	if keyCount == 0 {
		return Bigram{}, ErrInsufficientInput
	}

	current, err := chains.KeyAt(ctx, g.chooser.IntN(keyCount))
	if err != nil {
		return Bigram{}, fmt.Errorf("failed to pick starting bigram: %w", err)
	}
	return current, nil
}

// follow contains the main loop for walking a chain from current. Each chosen
// word is handed to emit; the walk ends early when emit returns false.
func (g *Generator) follow(ctx context.Context, chains Chains, current Bigram, options *generateOptions, emit func(string) bool) error {
	generatedCount := 2

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation interrupted after %d words: %w", generatedCount, err)
		}

		if options.maxWords > 0 && generatedCount >= options.maxWords {
			g.logger.DebugContext(ctx, "Generation stopped by reaching maxWords",
				slog.Int("max_words", options.maxWords),
				slog.Int("generated_length", generatedCount),
			)
			return nil
		}

		choices, err := chains.Next(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to get continuations for '%s': %w", current, err)
		}

		if len(choices) == 0 { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_bigram", current.String()),
				slog.Int("generated_length", generatedCount),
			)
			return nil
		}

		next := Choose(g.chooser, choices)
		if !emit(next) {
			return nil
		}
		generatedCount++
		current = current.Shift(next)
	}
}
