// Package cracker brute-forces a Vigenère ciphertext against a list of
// candidate keys and ranks the decodings by dictionary hits.
package cracker

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"vizhener/internal/cipher"
	"vizhener/pkg/options"
)

type Cracker struct {
	config options.CrackOptions
	engine *cipher.Engine
	norm   *cipher.Normalizer
	dict   Lookup
}

func New(engine *cipher.Engine, dict Lookup, opts ...options.Options) *Cracker {
	cfg := options.Resolve(opts...)
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Cracker{
		config: cfg,
		engine: engine,
		norm:   cipher.NewNormalizer(engine.Alphabet()),
		dict:   dict,
	}
}

func (c *Cracker) Config() options.CrackOptions { return c.config }

// Evaluate decodes ciphertext with key and scores the result.
func (c *Cracker) Evaluate(ciphertext, key string) Result {
	decoded := c.engine.Decode(ciphertext, key)
	return Result{Key: key, Decoded: decoded, Score: Score(decoded, c.dict)}
}

// Results lazily yields one Result per key, in key order. Progress is
// reported as keys are consumed; stopping early stops the work.
func (c *Cracker) Results(ciphertext string, keys []string) iter.Seq2[int, Result] {
	return func(yield func(int, Result) bool) {
		for i, key := range keys {
			r := c.Evaluate(ciphertext, key)
			c.report(i, len(keys))
			if !yield(i, r) {
				return
			}
		}
	}
}

// Rank evaluates every key and returns all results sorted by score,
// highest first. Equal scores keep key order, so the outcome does not
// depend on the number of workers.
func (c *Cracker) Rank(ctx context.Context, ciphertext string, keys []string) ([]Result, error) {
	var (
		results []Result
		err     error
	)
	if c.config.Workers > 1 && len(keys) > 1 {
		results, err = c.rankParallel(ctx, ciphertext, keys)
	} else {
		results, err = c.rankSequential(ctx, ciphertext, keys)
	}
	if err != nil {
		return nil, err
	}
	Sort(results)
	return results, nil
}

func (c *Cracker) rankSequential(ctx context.Context, ciphertext string, keys []string) ([]Result, error) {
	results := make([]Result, 0, len(keys))
	for _, r := range c.Results(ciphertext, keys) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// rankParallel gives each key its own slot in the result slice, so workers
// never share a write target.
func (c *Cracker) rankParallel(ctx context.Context, ciphertext string, keys []string) ([]Result, error) {
	results := make([]Result, len(keys))
	jobs := make(chan int)
	done := make(chan struct{}, c.config.Workers)

	var wg sync.WaitGroup
	for w := 0; w < c.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.Evaluate(ciphertext, keys[i])
				done <- struct{}{}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := range keys {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	n := 0
	for range done {
		c.report(n, len(keys))
		n++
	}
	if n < len(keys) {
		return nil, ctx.Err()
	}
	return results, nil
}

func (c *Cracker) report(i, total int) {
	if c.config.Progress == nil || c.config.ProgressEvery <= 0 {
		return
	}
	if i%c.config.ProgressEvery == 0 {
		c.config.Progress(i, total)
	}
}

// Crack normalizes raw, ranks every key and keeps the TopK best.
func (c *Cracker) Crack(ctx context.Context, raw string, keys []string) (Report, error) {
	text := c.norm.Normalize(strings.TrimSpace(raw))
	if text == "" {
		return Report{}, ErrEmptyCiphertext
	}
	start := time.Now()
	results, err := c.Rank(ctx, text, keys)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Ciphertext: text,
		Total:      len(results),
		Top:        Top(results, c.config.TopK),
		Elapsed:    time.Since(start),
	}, nil
}

// Sort orders results by score, highest first, keeping the relative order
// of equal scores.
func Sort(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// Top returns the first k results; k <= 0 returns all of them.
func Top(results []Result, k int) []Result {
	if k <= 0 || k >= len(results) {
		return results
	}
	return results[:k]
}
