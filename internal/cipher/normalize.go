package cipher

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator is the only non-letter rune that survives normalization.
const Separator = ' '

// Normalizer lowercases text and keeps only alphabet letters and Separator.
type Normalizer struct {
	alphabet *Alphabet
	lang     language.Tag
}

// NewNormalizer returns a Normalizer that folds case with Russian rules.
func NewNormalizer(a *Alphabet) *Normalizer {
	return &Normalizer{alphabet: a, lang: language.Russian}
}

func (n *Normalizer) Alphabet() *Alphabet { return n.alphabet }

// Normalize is total and idempotent.
func (n *Normalizer) Normalize(raw string) string {
	return n.filter(raw, true)
}

// Letters is Normalize without the separator: what remains of a key.
func (n *Normalizer) Letters(raw string) string {
	return n.filter(raw, false)
}

func (n *Normalizer) filter(raw string, keepSeparator bool) string {
	// cases.Caser хранит состояние, поэтому создаётся на каждый вызов
	lower := cases.Lower(n.lang).String(raw)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if n.alphabet.Contains(r) || (keepSeparator && r == Separator) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
