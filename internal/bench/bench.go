// Package bench runs every algorithm over the same generated inputs and
// collects trace statistics for comparison.
package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

var ErrNoCases = errors.New("bench: no algorithms or sizes")

type Config struct {
	Algorithms []trace.Algorithm
	Sizes      []int
	Pattern    input.Pattern
	Min, Max   int
	Seed       int64
	// Workers bounds concurrent trace generation. Zero means GOMAXPROCS.
	Workers int
}

type Case struct {
	Algorithm trace.Algorithm
	Size      int
}

type Result struct {
	Case
	Stats   metrics.Stats
	Elapsed time.Duration
}

// Cases expands the grid with sizes as the outer loop.
func Cases(algs []trace.Algorithm, sizes []int) []Case {
	out := make([]Case, 0, len(algs)*len(sizes))
	for _, n := range sizes {
		for _, a := range algs {
			out = append(out, Case{Algorithm: a, Size: n})
		}
	}
	return out
}

// Run generates one input per size and traces every algorithm against it.
// Results are returned in Cases order.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	cases := Cases(cfg.Algorithms, cfg.Sizes)
	if len(cases) == 0 {
		return nil, ErrNoCases
	}

	gen := input.Seeded(cfg.Seed)
	inputs := make(map[int][]int, len(cfg.Sizes))
	for _, n := range cfg.Sizes {
		if _, ok := inputs[n]; ok {
			continue
		}
		values, err := gen.Generate(cfg.Pattern, n, cfg.Min, cfg.Max)
		if err != nil {
			return nil, fmt.Errorf("size %d: %w", n, err)
		}
		inputs[n] = values
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			tr, err := trace.Generate(c.Algorithm, inputs[c.Size])
			if err != nil {
				return fmt.Errorf("%s/%d: %w", c.Algorithm, c.Size, err)
			}
			results[i] = Result{Case: c, Stats: metrics.Summarize(tr), Elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Series returns one comparisons-per-size series for each algorithm in
// algs, suitable for a multi-line plot.
func Series(results []Result, algs []trace.Algorithm) [][]float64 {
	idx := make(map[trace.Algorithm]int, len(algs))
	for i, a := range algs {
		idx[a] = i
	}
	out := make([][]float64, len(algs))
	for _, r := range results {
		if i, ok := idx[r.Algorithm]; ok {
			out[i] = append(out[i], float64(r.Stats.Comparisons))
		}
	}
	return out
}
