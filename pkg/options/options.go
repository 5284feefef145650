package options

import "runtime"

// DefaultOptions describe a single-threaded run that keeps the top 10.
var DefaultOptions = CrackOptions{
	TopK:          10,
	Workers:       1,
	ProgressEvery: 10_000,
}

// ProgressFunc receives the 0-based index of a processed candidate and the
// total number of candidates.
type ProgressFunc func(done, total int)

type CrackOptions struct {
	TopK          int // сколько лучших результатов отдавать
	Workers       int // 1 — последовательный проход, >1 — пул воркеров
	ProgressEvery int // 0 отключает прогресс
	Progress      ProgressFunc
}

type Options interface {
	Apply(options *CrackOptions)
}

type FuncConfig struct {
	ops func(options *CrackOptions)
}

func (w FuncConfig) Apply(conf *CrackOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CrackOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts on top of DefaultOptions.
func Resolve(opts ...Options) CrackOptions {
	o := DefaultOptions
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(&o)
		}
	}
	return o
}

func WithTopK(k int) Options {
	return NewFuncOption(func(options *CrackOptions) {
		options.TopK = k
	})
}

// WithWorkers sets the worker count; n <= 0 means one per CPU.
func WithWorkers(n int) Options {
	return NewFuncOption(func(options *CrackOptions) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		options.Workers = n
	})
}

func WithProgressEvery(n int) Options {
	return NewFuncOption(func(options *CrackOptions) {
		options.ProgressEvery = n
	})
}

func WithProgress(f ProgressFunc) Options {
	return NewFuncOption(func(options *CrackOptions) {
		options.Progress = f
	})
}

// WithoutProgress disables progress reporting entirely.
func WithoutProgress() Options {
	return NewFuncOption(func(options *CrackOptions) {
		options.ProgressEvery = 0
		options.Progress = nil
	})
}
