package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const scenarioText = "hi there mary hi there juanita"

// firstChooser always picks the first option.
type firstChooser struct{}

func (firstChooser) IntN(int) int { return 0 }

// scriptedChooser replays a fixed list of picks, then falls back to 0.
type scriptedChooser struct {
	picks []int
	calls int
}

func (s *scriptedChooser) IntN(n int) int {
	defer func() { s.calls++ }()
	if s.calls < len(s.picks) && s.picks[s.calls] < n {
		return s.picks[s.calls]
	}
	return 0
}

// chainsFromText is a convenience helper that builds a chain and fails the
// test if it came out empty.
func chainsFromText(t *testing.T, text string) *ChainMap {
	t.Helper()
	chains := Build(text)
	if chains.Size() == 0 {
		t.Fatalf("setup: Build(%q) produced an empty chain", text)
	}
	return chains
}

// buildFromString runs a streaming build over text into a fresh ChainMap.
func buildFromString(t testing.TB, text string) *ChainMap {
	t.Helper()
	chains := NewChainMap()
	if _, err := NewBuilder(nil).BuildFrom(context.Background(), strings.NewReader(text), chains); err != nil {
		t.Fatalf("BuildFrom() error = %v", err)
	}
	return chains
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
