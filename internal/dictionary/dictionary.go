// Package dictionary turns a raw word corpus into the lookup set used for
// scoring and the ordered list of candidate keys.
package dictionary

import (
	"context"
	"strings"
	"unicode/utf8"

	"vizhener/internal/cipher"
)

// DefaultMinKeyLength: only words strictly longer than this become keys.
const DefaultMinKeyLength = 5

// Index is a set of normalized words. It is never mutated after
// construction, so concurrent readers need no locking.
type Index struct {
	words map[string]struct{}
}

func NewIndex(words []string) *Index {
	ix := &Index{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		ix.words[w] = struct{}{}
	}
	return ix
}

// Contains reports exact membership.
func (ix *Index) Contains(word string) bool {
	_, ok := ix.words[word]
	return ok
}

func (ix *Index) Len() int { return len(ix.words) }

// With returns a new Index holding ix's words plus extra.
func (ix *Index) With(extra []string) *Index {
	out := &Index{words: make(map[string]struct{}, len(ix.words)+len(extra))}
	for w := range ix.words {
		out.words[w] = struct{}{}
	}
	for _, w := range extra {
		out.words[w] = struct{}{}
	}
	return out
}

// Corpus is everything derived once from the word list.
type Corpus struct {
	// Words keeps corpus order and duplicates.
	Words []string
	Index *Index
	// Candidates also keeps duplicates: each occurrence is tried as a key.
	Candidates []string
}

// Build normalizes lines and derives the index and candidate keys.
func Build(lines []string, norm *cipher.Normalizer, minKeyLength int) *Corpus {
	words := Words(lines, norm)
	return &Corpus{
		Words:      words,
		Index:      NewIndex(words),
		Candidates: Candidates(words, minKeyLength),
	}
}

// Words trims and normalizes every line, dropping lines that end up empty.
func Words(lines []string, norm *cipher.Normalizer) []string {
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		w := norm.Normalize(strings.TrimSpace(line))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Candidates returns, in order, the words with more than minKeyLength runes.
func Candidates(words []string, minKeyLength int) []string {
	var keys []string
	for _, w := range words {
		if utf8.RuneCountInString(w) > minKeyLength {
			keys = append(keys, w)
		}
	}
	return keys
}

// WordSource supplies extra dictionary words, e.g. a Redis set.
type WordSource interface {
	All(ctx context.Context) ([]string, error)
}

// LoadCustom fetches and normalizes the words of src.
func LoadCustom(ctx context.Context, src WordSource, norm *cipher.Normalizer) ([]string, error) {
	raw, err := src.All(ctx)
	if err != nil {
		return nil, err
	}
	return Words(raw, norm), nil
}
