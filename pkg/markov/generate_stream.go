package markov

import (
	"context"
	"log/slog"
)

// GenerateStream walks chains like Generate but returns a read-only channel
// that yields the words one at a time, starting with the two words of the
// starting bigram. This is useful when a walk is long and its words should be
// consumed as they are chosen.
//
// An empty chain is reported immediately as ErrInsufficientInput. Errors
// reading the chain after that are logged and end the stream. The channel is
// closed once generation is complete or the context is cancelled.
func (g *Generator) GenerateStream(ctx context.Context, chains Chains, opts ...GenerateOption) (<-chan Token, error) {
	options := newGenerateOptions(opts)

	start, err := g.start(ctx, chains)
	if err != nil {
		return nil, err
	}

	tokenChan := make(chan Token)

	send := func(word string) bool {
		select {
		case <-ctx.Done():
			g.logger.DebugContext(ctx, "Generation stream cancelled by context")
			return false
		case tokenChan <- Token{Text: word}:
			return true
		}
	}

	go func() {
		defer close(tokenChan)

		if !send(start.Word1) || !send(start.Word2) {
			return
		}
		if err := g.follow(ctx, chains, start, options, send); err != nil {
			if ctx.Err() != nil {
				g.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			}
			g.logger.ErrorContext(ctx, "Generation stream failed", slog.Any("error", err))
		}
	}()

	return tokenChan, nil
}
