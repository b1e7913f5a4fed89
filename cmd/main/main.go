package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/CTAG07/markovtext/pkg/chainstore"
	"github.com/CTAG07/markovtext/pkg/markov"
	"github.com/google/uuid"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var errUsage = errors.New("usage: markovtext <file>")

func main() {
	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		baseLogger.Error("markovtext failed", "error", err)
		os.Exit(1)
	}
}

// run reads the file named by args[1], builds its chain, and writes one
// generated line to stdout. All logging goes to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) != 2 {
		return errUsage
	}

	baseLogger := slog.New(slog.NewTextHandler(stderr, nil))
	config, err := LoadConfig(os.Getenv(configEnvVar), baseLogger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(config, stderr)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()))
	logger.Debug("Starting run",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("build_date", BuildDate),
		slog.String("input", args[1]),
		slog.String("store", config.Store),
	)

	text, err := readInput(args[1])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	chains, cleanup, err := buildChains(ctx, config, logger, text)
	if err != nil {
		return err
	}
	defer cleanup()

	var chooser markov.Chooser
	if config.Seed != nil {
		chooser = markov.NewSeededChooser(*config.Seed)
	}
	generator := markov.NewGenerator(chooser)
	generator.SetLogger(logger)

	output, err := generator.Generate(ctx, chains, markov.WithMaxWords(config.MaxWords))
	if err != nil {
		return fmt.Errorf("failed to generate text: %w", err)
	}

	_, err = fmt.Fprintln(stdout, output)
	return err
}

// readInput returns the entire contents of the file at path.
func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildChains builds the chain of text in the configured store. The returned
// cleanup function releases the store and must be called once generation is done.
func buildChains(ctx context.Context, config *Config, logger *slog.Logger, text string) (markov.Chains, func(), error) {
	if config.Store == storeMemory {
		chains := markov.Build(text)
		stats := chains.Stats()
		logger.Info("Chain built",
			slog.Int("bigrams", stats.Keys),
			slog.Int("links", stats.Links),
			slog.Int("distinct_links", stats.Distinct),
		)
		return chains, func() {}, nil
	}

	db, err := initDB(config.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}

	if err = chainstore.SetupSchema(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to setup chain schema: %w", err)
	}

	store, err := chainstore.NewStore(db)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error creating chain store: %w", err)
	}
	store.SetLogger(logger)
	cleanup = func() {
		store.Close()
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}

	if err = fillStore(ctx, store, logger, text); err != nil {
		cleanup()
		return nil, nil, err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to read chain stats: %w", err)
	}
	logger.Info("Chain built",
		slog.Int("bigrams", stats.Keys),
		slog.Int("links", stats.Links),
		slog.Int("distinct_links", stats.Distinct),
	)

	return store, cleanup, nil
}

// fillStore replaces whatever the store held with the chain of text.
func fillStore(ctx context.Context, store *chainstore.Store, logger *slog.Logger, text string) error {
	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset chain store: %w", err)
	}

	writer, err := store.NewWriter(ctx)
	if err != nil {
		return fmt.Errorf("failed to open chain writer: %w", err)
	}

	builder := markov.NewBuilder(markov.NewWhitespaceTokenizer())
	builder.SetLogger(logger)
	if _, err = builder.BuildFrom(ctx, strings.NewReader(text), writer); err != nil {
		_ = writer.Rollback()
		return fmt.Errorf("failed to build chain: %w", err)
	}

	if err = writer.Commit(ctx); err != nil {
		return fmt.Errorf("failed to store chain: %w", err)
	}
	return nil
}

// newLogger builds the run logger from the config. Logs never go to stdout,
// which carries only the generated text.
func newLogger(config *Config, w io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(config.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
