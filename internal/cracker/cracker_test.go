package cracker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"vizhener/internal/cipher"
	"vizhener/internal/dictionary"
	"vizhener/pkg/options"
)

var corpus = []string{
	"привет", "мир", "друг", "сегодня", "хорошая", "погода",
	"шифрование", "ключник", "программа", "солнце", "погода",
}

func setup(t *testing.T) (*cipher.Engine, *dictionary.Corpus) {
	t.Helper()
	a := cipher.MustAlphabet(cipher.Russian)
	c := dictionary.Build(corpus, cipher.NewNormalizer(a), dictionary.DefaultMinKeyLength)
	return cipher.NewEngine(a), c
}

func TestScore(t *testing.T) {
	dict := dictionary.NewIndex([]string{"привет", "мир"})
	tests := []struct {
		decoded string
		want    int
	}{
		{"привет друг мир", 2},
		{"", 0},
		{"   ", 0},
		{"мир  мир   мир", 3},
		{"приветмир", 0},
	}
	for _, tt := range tests {
		got := Score(tt.decoded, dict)
		if got != tt.want {
			t.Errorf("Score(%q) = %d, want %d", tt.decoded, got, tt.want)
		}
		if got < 0 || got > len(strings.Fields(tt.decoded)) {
			t.Errorf("Score(%q) = %d out of bounds", tt.decoded, got)
		}
	}
}

func TestCrackFindsKey(t *testing.T) {
	e, c := setup(t)
	plain := "сегодня хорошая погода привет мир"
	ct := e.Encode(plain, "шифрование")

	cr := New(e, c.Index, options.WithoutProgress())
	rep, err := cr.Crack(context.Background(), strings.ToUpper(ct)+"!", c.Candidates)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Total != len(c.Candidates) {
		t.Fatalf("Total = %d, want %d", rep.Total, len(c.Candidates))
	}
	best := rep.Top[0]
	if best.Key != "шифрование" || best.Decoded != plain || best.Score != 5 {
		t.Fatalf("best = %+v", best)
	}
	if rep.Ciphertext != ct {
		t.Fatalf("Ciphertext = %q, want %q", rep.Ciphertext, ct)
	}
}

func TestCrackEmptyCiphertext(t *testing.T) {
	e, c := setup(t)
	called := false
	cr := New(e, c.Index, options.WithProgress(func(int, int) { called = true }))
	for _, raw := range []string{"", "   ", "123", "abc!", "\t"} {
		_, err := cr.Crack(context.Background(), raw, c.Candidates)
		if !errors.Is(err, ErrEmptyCiphertext) {
			t.Errorf("Crack(%q) err = %v, want ErrEmptyCiphertext", raw, err)
		}
	}
	if called {
		t.Fatal("ranking ran on empty input")
	}
}

func TestRankOrderAndCompleteness(t *testing.T) {
	e, c := setup(t)
	ct := e.Encode("погода погода солнце друг", "ключник")
	keys := append([]string{}, c.Candidates...)
	keys = append(keys, "ключник") // повтор ключа не схлопывается

	results, err := New(e, c.Index).Rank(context.Background(), ct, keys)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(keys) {
		t.Fatalf("len = %d, want %d", len(results), len(keys))
	}
	for i := 0; i+1 < len(results); i++ {
		if results[i].Score < results[i+1].Score {
			t.Fatalf("not sorted at %d: %d < %d", i, results[i].Score, results[i+1].Score)
		}
	}
	if results[0].Key != "ключник" || results[1].Key != "ключник" || results[0].Score != 4 {
		t.Fatalf("top two = %+v, %+v", results[0], results[1])
	}
}

func TestSortIsStable(t *testing.T) {
	rs := []Result{
		{Key: "а", Score: 1}, {Key: "б", Score: 3}, {Key: "в", Score: 1},
		{Key: "г", Score: 3}, {Key: "д", Score: 0},
	}
	Sort(rs)
	var keys []string
	for _, r := range rs {
		keys = append(keys, r.Key)
	}
	if want := []string{"б", "г", "а", "в", "д"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("order = %v, want %v", keys, want)
	}
}

func TestTop(t *testing.T) {
	rs := make([]Result, 15)
	if got := len(Top(rs, 10)); got != 10 {
		t.Fatalf("Top 10 of 15 = %d", got)
	}
	if got := len(Top(rs[:3], 10)); got != 3 {
		t.Fatalf("Top 10 of 3 = %d", got)
	}
	if got := len(Top(rs, 0)); got != 15 {
		t.Fatalf("Top 0 = %d", got)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	e, c := setup(t)
	var keys []string
	for i := 0; i < 50; i++ {
		keys = append(keys, c.Candidates...)
	}
	ct := e.Encode("привет друг хорошая погода", "программа")

	seq, err := New(e, c.Index, options.WithWorkers(1)).Rank(context.Background(), ct, keys)
	if err != nil {
		t.Fatal(err)
	}
	par, err := New(e, c.Index, options.WithWorkers(8)).Rank(context.Background(), ct, keys)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Fatal("parallel ranking differs from sequential")
	}
}

func TestProgressCadence(t *testing.T) {
	e, c := setup(t)
	keys := make([]string, 25)
	for i := range keys {
		keys[i] = c.Candidates[i%len(c.Candidates)]
	}
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			var (
				mu   sync.Mutex
				seen []int
			)
			cr := New(e, c.Index,
				options.WithWorkers(workers),
				options.WithProgressEvery(10),
				options.WithProgress(func(done, total int) {
					mu.Lock()
					defer mu.Unlock()
					if total != 25 {
						t.Errorf("total = %d", total)
					}
					seen = append(seen, done)
				}),
			)
			if _, err := cr.Rank(context.Background(), "абв", keys); err != nil {
				t.Fatal(err)
			}
			if want := []int{0, 10, 20}; !reflect.DeepEqual(seen, want) {
				t.Fatalf("progress = %v, want %v", seen, want)
			}
		})
	}
}

func TestResultsIsLazy(t *testing.T) {
	e, c := setup(t)
	cr := New(e, c.Index, options.WithoutProgress())
	n := 0
	for i, r := range cr.Results("абв", c.Candidates) {
		if r.Key != c.Candidates[i] {
			t.Fatalf("result %d key = %q", i, r.Key)
		}
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("consumed %d", n)
	}
}

func TestRankCanceled(t *testing.T) {
	e, c := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		_, err := New(e, c.Index, options.WithWorkers(workers)).Rank(ctx, "абв", c.Candidates)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: err = %v, want context.Canceled", workers, err)
		}
	}
}
