package cracker

import (
	"errors"
	"time"
)

// ErrEmptyCiphertext means nothing was left to decode after normalization.
// It is a user-facing condition, not a failure.
var ErrEmptyCiphertext = errors.New("ciphertext is empty after normalization")

// Result is one candidate key's outcome.
type Result struct {
	Key     string `json:"key"`
	Decoded string `json:"decoded"`
	Score   int    `json:"score"`
}

type Report struct {
	Ciphertext string        `json:"ciphertext"`
	Total      int           `json:"total"`
	Top        []Result      `json:"top"`
	Elapsed    time.Duration `json:"elapsed"`
}
