// Package parallel splits sample-axis work into fixed-size chunks and runs
// them on a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether chunks may run on more than one goroutine.
	NumWorkers   int  // Maximum goroutines running at once.
	MinChunkSize int  // Items per chunk. Chunking depends only on this, never on NumWorkers.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1 << 14,
	}
}

// Sequential returns DefaultConfig with every chunk run on the calling
// goroutine. Chunk boundaries, and so results, are unchanged.
func Sequential() Config {
	cfg := DefaultConfig()
	cfg.Enabled = false
	cfg.NumWorkers = 1
	return cfg
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.End - r.Start }

// Ranges splits [0, n) into contiguous chunks of cfg.MinChunkSize items.
// Only MinChunkSize is consulted; Enabled and NumWorkers affect how
// ForRanges schedules the chunks, never where they start and end.
func Ranges(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	if cfg.MinChunkSize <= 0 || n <= cfg.MinChunkSize {
		return []Range{{0, n}}
	}

	out := make([]Range, 0, (n+cfg.MinChunkSize-1)/cfg.MinChunkSize)
	for start := 0; start < n; start += cfg.MinChunkSize {
		out = append(out, Range{start, min(start+cfg.MinChunkSize, n)})
	}
	return out
}

// ForRanges executes f(k, ranges[k]) for every range, running at most
// cfg.NumWorkers at once. It returns once all calls have finished.
func ForRanges(ranges []Range, f func(k int, r Range), cfg Config) {
	if len(ranges) == 1 || !cfg.Enabled || cfg.NumWorkers <= 1 {
		for k, r := range ranges {
			f(k, r)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.NumWorkers)
	for k, r := range ranges {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int, r Range) {
			defer func() {
				<-sem
				wg.Done()
			}()
			f(k, r)
		}(k, r)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForRanges(Ranges(n, cfg), func(_ int, r Range) {
		for i := r.Start; i < r.End; i++ {
			f(i)
		}
	}, cfg)
}
