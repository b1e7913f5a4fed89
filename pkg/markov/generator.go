package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

// ErrInsufficientInput is returned when generation is asked to walk a chain
// that has no bigrams, which happens whenever the source text had fewer than
// three tokens.
var ErrInsufficientInput = errors.New("insufficient input: chain has no bigrams")

// Chooser is the random source used for every choice made during generation.
// IntN returns a value in [0, n) and is only ever called with n > 0.
// A *rand.Rand from math/rand/v2 satisfies it.
type Chooser interface {
	IntN(n int) int
}

// Choose returns one element of items picked by c. items must not be empty.
func Choose[T any](c Chooser, items []T) T {
	return items[c.IntN(len(items))]
}

// globalChooser draws from the process-wide math/rand/v2 source.
type globalChooser struct{}

func (globalChooser) IntN(n int) int {
	return rand.IntN(n)
}

// NewSeededChooser returns a Chooser whose sequence of choices depends only
// on seed.
func NewSeededChooser(seed uint64) Chooser {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator walks chains to produce text.
type Generator struct {
	chooser Chooser
	logger  *slog.Logger
}

// NewGenerator creates a Generator that makes its random choices with chooser.
// A nil chooser uses the process-wide random source.
func NewGenerator(chooser Chooser) *Generator {
	if chooser == nil {
		chooser = globalChooser{}
	}
	return &Generator{
		chooser: chooser,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable debug records describing why each
// walk ended.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}
