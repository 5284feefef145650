package cipher

import (
	"fmt"
	"unicode/utf8"
)

// Russian is the 33-letter lowercase Cyrillic alphabet in dictionary order.
const Russian = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"

// Alphabet is an ordered set of letters with a precomputed reverse index.
// It is immutable after construction and safe for concurrent use.
type Alphabet struct {
	letters []rune
	index   map[rune]int
}

// NewAlphabet builds an Alphabet from the letters of s, in order.
func NewAlphabet(s string) (*Alphabet, error) {
	if s == "" {
		return nil, fmt.Errorf("alphabet is empty")
	}
	a := &Alphabet{
		letters: make([]rune, 0, utf8.RuneCountInString(s)),
		index:   make(map[rune]int),
	}
	for _, r := range s {
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet: letter %q repeats", r)
		}
		a.index[r] = len(a.letters)
		a.letters = append(a.letters, r)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on invalid input.
func MustAlphabet(s string) *Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Alphabet) Len() int { return len(a.letters) }

// Index returns the position of r in the alphabet.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Letter returns the letter at position i; i must be in [0, Len()).
func (a *Alphabet) Letter(i int) rune { return a.letters[i] }

func (a *Alphabet) String() string { return string(a.letters) }

// mustIndex is used where the caller has already filtered r through the
// alphabet; a miss here means a broken invariant, not bad input.
func (a *Alphabet) mustIndex(r rune) int {
	i, ok := a.index[r]
	if !ok {
		panic(fmt.Sprintf("cipher: rune %q is not in alphabet %q", r, a.String()))
	}
	return i
}
