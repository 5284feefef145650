package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vizhener/internal/cipher"
)

func newNorm() *cipher.Normalizer {
	return cipher.NewNormalizer(cipher.MustAlphabet(cipher.Russian))
}

func TestBuild(t *testing.T) {
	lines := []string{
		"  Привет ",
		"мир",
		"",
		"123",
		"Сокровище",
		"сокровище",
		"ПРОГРАММА!",
		"слово",
	}
	c := Build(lines, newNorm(), DefaultMinKeyLength)

	wantWords := []string{"привет", "мир", "сокровище", "сокровище", "программа", "слово"}
	if !reflect.DeepEqual(c.Words, wantWords) {
		t.Fatalf("Words = %v, want %v", c.Words, wantWords)
	}
	// дубликаты остаются кандидатами
	wantKeys := []string{"привет", "сокровище", "сокровище", "программа"}
	if !reflect.DeepEqual(c.Candidates, wantKeys) {
		t.Fatalf("Candidates = %v, want %v", c.Candidates, wantKeys)
	}
	if c.Index.Len() != 5 {
		t.Fatalf("Index.Len = %d, want 5", c.Index.Len())
	}
	for _, w := range []string{"привет", "мир", "слово"} {
		if !c.Index.Contains(w) {
			t.Errorf("Index should contain %q", w)
		}
	}
	if c.Index.Contains("Привет") || c.Index.Contains("") {
		t.Error("Index matched a non-normalized or empty word")
	}
}

func TestCandidatesBoundary(t *testing.T) {
	words := []string{"пятьб", "шесть_", "шестьб", "ёжикии"}
	got := Candidates(words, 5)
	want := []string{"шесть_", "шестьб", "ёжикии"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}

func TestIndexWithDoesNotMutate(t *testing.T) {
	base := NewIndex([]string{"кот"})
	ext := base.With([]string{"пёс"})
	if base.Contains("пёс") {
		t.Fatal("With mutated the receiver")
	}
	if !ext.Contains("кот") || !ext.Contains("пёс") {
		t.Fatal("With lost words")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "russian.txt")
	if err := os.WriteFile(path, []byte("привет\r\nмир\nпрограмма\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"привет", "мир", "программа"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("LoadFile = %q, want %q", lines, want)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := LoadFile(path)
	if err != nil || len(lines) != 0 {
		t.Fatalf("LoadFile(empty) = %v, %v", lines, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrCorpusUnavailable) {
		t.Fatalf("err = %v, want ErrCorpusUnavailable", err)
	}
}

type fakeSource struct {
	words []string
	err   error
}

func (f fakeSource) All(context.Context) ([]string, error) { return f.words, f.err }

func TestLoadCustom(t *testing.T) {
	got, err := LoadCustom(context.Background(), fakeSource{words: []string{"Шифр", "  ", "ключ!"}}, newNorm())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"шифр", "ключ"}) {
		t.Fatalf("LoadCustom = %v", got)
	}

	boom := errors.New("boom")
	if _, err := LoadCustom(context.Background(), fakeSource{err: boom}, newNorm()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
