// Package input produces the integer arrays that traces are generated from.
package input

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidSize    = errors.New("input: size must be positive")
	ErrInvalidRange   = errors.New("input: min must not exceed max")
	ErrUnknownPattern = errors.New("input: unknown pattern")
)

const (
	DefaultSize = 30
	DefaultMin  = 5
	DefaultMax  = 100
)

// Source is the randomness behind a Generator. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Pattern selects the shape of a generated array.
type Pattern string

const (
	Random       Pattern = "random"
	Reversed     Pattern = "reversed"
	NearlySorted Pattern = "nearly_sorted"
	FewUnique    Pattern = "few_unique"
)

func Patterns() []Pattern {
	return []Pattern{Random, Reversed, NearlySorted, FewUnique}
}

func ParsePattern(s string) (Pattern, error) {
	p := Pattern(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if p == "" {
		return Random, nil
	}
	for _, known := range Patterns() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

type Generator struct {
	src Source
}

// NewGenerator wraps src. A nil src is seeded from the wall clock.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{src: src}
}

// Seeded returns a Generator whose output is fully determined by seed.
func Seeded(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Random returns n values drawn uniformly from [min, max].
func (g *Generator) Random(n, min, max int) ([]int, error) {
	if err := check(n, min, max); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = g.between(min, max)
	}
	return out, nil
}

// Reversed returns n values in non-increasing order.
func (g *Generator) Reversed(n, min, max int) ([]int, error) {
	out, err := g.ascending(n, min, max)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// NearlySorted returns an ascending array with roughly one in ten positions
// swapped with a neighbour.
func (g *Generator) NearlySorted(n, min, max int) ([]int, error) {
	out, err := g.ascending(n, min, max)
	if err != nil {
		return nil, err
	}
	swaps := n / 10
	if swaps == 0 && n > 1 {
		swaps = 1
	}
	for k := 0; k < swaps; k++ {
		i := g.src.Intn(n - 1)
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out, nil
}

// FewUnique draws every value from a small pool of at most five distinct values.
func (g *Generator) FewUnique(n, min, max int) ([]int, error) {
	if err := check(n, min, max); err != nil {
		return nil, err
	}
	pool := make([]int, 0, 5)
	for i := 0; i < 5 && i <= max-min; i++ {
		pool = append(pool, g.between(min, max))
	}
	out := make([]int, n)
	for i := range out {
		out[i] = pool[g.src.Intn(len(pool))]
	}
	return out, nil
}

func (g *Generator) Generate(p Pattern, n, min, max int) ([]int, error) {
	switch p {
	case Random, "":
		return g.Random(n, min, max)
	case Reversed:
		return g.Reversed(n, min, max)
	case NearlySorted:
		return g.NearlySorted(n, min, max)
	case FewUnique:
		return g.FewUnique(n, min, max)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, string(p))
}

func (g *Generator) ascending(n, min, max int) ([]int, error) {
	out, err := g.Random(n, min, max)
	if err != nil {
		return nil, err
	}
	sort.Ints(out)
	return out, nil
}

func (g *Generator) between(min, max int) int {
	return min + g.src.Intn(max-min+1)
}

func check(n, min, max int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if min > max {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	// The span max-min+1 must fit in an int for Intn.
	if span := max - min + 1; span <= 0 {
		return fmt.Errorf("%w: [%d, %d] is too wide", ErrInvalidRange, min, max)
	}
	return nil
}
