package markov

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateScriptedPath(t *testing.T) {
	chains := chainsFromText(t, scenarioText)

	// Start at ("hi", "there"), then mary, hi, there, and finally juanita,
	// the second continuation of ("hi", "there").
	chooser := &scriptedChooser{picks: []int{0, 0, 0, 0, 1}}
	output, err := NewGenerator(chooser).Generate(context.Background(), chains)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if output != scenarioText {
		t.Errorf("expected %q, got %q", scenarioText, output)
	}
}

func TestGenerateWithMaxWords(t *testing.T) {
	chains := chainsFromText(t, scenarioText)

	testCases := []struct {
		name     string
		maxWords int
		expected string
	}{
		{
			name:     "Limit cuts a cycling walk",
			maxWords: 6,
			expected: "hi there mary hi there mary",
		},
		{
			name:     "Limit below seed length keeps the seed",
			maxWords: 1,
			expected: "hi there",
		},
		{
			name:     "Limit of three",
			maxWords: 3,
			expected: "hi there mary",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := NewGenerator(firstChooser{}).Generate(context.Background(), chains, WithMaxWords(tc.maxWords))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if output != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, output)
			}
		})
	}
}

func TestGenerateInsufficientInput(t *testing.T) {
	for _, text := range []string{"", "   ", "only two"} {
		chains := Build(text)
		if chains.Size() != 0 {
			t.Fatalf("Build(%q) should be empty, got %d keys", text, chains.Size())
		}

		_, err := Generate(chains)
		if !errors.Is(err, ErrInsufficientInput) {
			t.Errorf("Generate on Build(%q): expected ErrInsufficientInput, got %v", text, err)
		}
	}
}

func TestGenerateFollowsChain(t *testing.T) {
	text := "one fish two fish red fish blue fish one fish old fish new fish two fish blue whale"
	chains := chainsFromText(t, text)

	for seed := uint64(0); seed < 200; seed++ {
		output, err := NewGenerator(NewSeededChooser(seed)).Generate(context.Background(), chains)
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}

		words := strings.Split(output, " ")
		if len(words) < 2 {
			t.Fatalf("seed %d: expected at least 2 words, got %q", seed, output)
		}
		if _, ok := chains.Continuations(Bigram{words[0], words[1]}); !ok {
			t.Fatalf("seed %d: output starts with %q %q, which is not a key", seed, words[0], words[1])
		}
		for i := 2; i < len(words); i++ {
			key := Bigram{words[i-2], words[i-1]}
			list, _ := chains.Continuations(key)
			if !contains(list, words[i]) {
				t.Fatalf("seed %d: %q is not a recorded continuation of %q", seed, words[i], key)
			}
		}
		last := Bigram{words[len(words)-2], words[len(words)-1]}
		if _, ok := chains.Continuations(last); ok {
			t.Fatalf("seed %d: walk stopped at %q, which still has continuations", seed, last)
		}
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	chains := chainsFromText(t, createBenchmarkCorpus())
	ctx := context.Background()

	first, err := NewGenerator(NewSeededChooser(42)).Generate(ctx, chains, WithMaxWords(200))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := NewGenerator(NewSeededChooser(42)).Generate(ctx, chains, WithMaxWords(200))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different output:\n%q\n%q", first, second)
	}
}

func TestGenerateWithCancelledContext(t *testing.T) {
	chains := chainsFromText(t, scenarioText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(firstChooser{}).Generate(ctx, chains)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type brokenChains struct {
	*ChainMap
	err error
}

func (b brokenChains) Next(context.Context, Bigram) ([]string, error) {
	return nil, b.err
}

func TestGenerateChainsError(t *testing.T) {
	storeErr := errors.New("database is locked")
	chains := brokenChains{ChainMap: chainsFromText(t, scenarioText), err: storeErr}

	_, err := NewGenerator(firstChooser{}).Generate(context.Background(), chains)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if !strings.Contains(err.Error(), "hi there") {
		t.Errorf("expected error to name the bigram, got %q", err.Error())
	}
}

func TestChoose(t *testing.T) {
	items := []string{"a", "b", "c"}
	if got := Choose[string](&scriptedChooser{picks: []int{2}}, items); got != "c" {
		t.Errorf("expected 'c', got %q", got)
	}

	chooser := NewSeededChooser(7)
	counts := make(map[string]int)
	for i := 0; i < 3000; i++ {
		counts[Choose(chooser, []string{"x", "x", "y"})]++
	}
	// "x" is listed twice so it should win roughly two thirds of the draws.
	if counts["x"] < 1700 || counts["x"] > 2300 {
		t.Errorf("expected about 2000 draws of duplicated 'x', got %d", counts["x"])
	}
}

func contains(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	chains := Build(corpus)
	ctx := context.Background()
	g := NewGenerator(NewSeededChooser(1))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := g.Generate(ctx, chains, WithMaxWords(50))
		b.SetBytes(int64(len(s)))
		if err != nil {
			b.Fatalf("Generate() failed: %v", err)
		}
	}
}
