// Package cipher implements additive Vigenère shifting over an arbitrary
// ordered alphabet. Runes outside the alphabet pass through untouched and
// do not advance the key.
package cipher

import "strings"

type Engine struct {
	alphabet *Alphabet
	norm     *Normalizer
}

func NewEngine(a *Alphabet) *Engine {
	return &Engine{alphabet: a, norm: NewNormalizer(a)}
}

func (e *Engine) Alphabet() *Alphabet { return e.alphabet }

// Decode subtracts the key from text letter by letter, modulo the alphabet
// length. A key with no alphabet letters leaves text unchanged.
func (e *Engine) Decode(text, key string) string {
	return e.shift(text, key, -1)
}

// Encode is the inverse of Decode.
func (e *Engine) Encode(text, key string) string {
	return e.shift(text, key, +1)
}

func (e *Engine) shift(text, key string, sign int) string {
	shifts := e.keyShifts(key)
	if len(shifts) == 0 {
		return text
	}
	n := e.alphabet.Len()
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, r := range text {
		idx, ok := e.alphabet.Index(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		k := shifts[pos%len(shifts)]
		pos++
		b.WriteRune(e.alphabet.Letter((idx + sign*k + n) % n))
	}
	return b.String()
}

// keyShifts converts the key to alphabet positions once per call.
func (e *Engine) keyShifts(key string) []int {
	letters := e.norm.Letters(key)
	if letters == "" {
		return nil
	}
	shifts := make([]int, 0, len(letters)/2)
	for _, r := range letters {
		shifts = append(shifts, e.alphabet.mustIndex(r))
	}
	return shifts
}
