package cracker

import "strings"

// Lookup is the membership test the scorer needs from a dictionary.
type Lookup interface {
	Contains(word string) bool
}

// Score counts whitespace-separated tokens of decoded found in dict.
// Repeated tokens count every time.
func Score(decoded string, dict Lookup) int {
	n := 0
	for _, tok := range strings.Fields(decoded) {
		if dict.Contains(tok) {
			n++
		}
	}
	return n
}
