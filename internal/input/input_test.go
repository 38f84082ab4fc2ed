package input

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestRandomBounds(t *testing.T) {
	g := Seeded(1)
	arr, err := g.Random(DefaultSize, DefaultMin, DefaultMax)
	if err != nil {
		t.Fatal(err)
	}
	if len(arr) != DefaultSize {
		t.Fatalf("expected %d values, got %d", DefaultSize, len(arr))
	}
	for i, v := range arr {
		if v < DefaultMin || v > DefaultMax {
			t.Errorf("arr[%d] = %d outside [%d, %d]", i, v, DefaultMin, DefaultMax)
		}
	}
}

func TestSeededIsDeterministic(t *testing.T) {
	a, _ := Seeded(42).Random(20, 0, 1000)
	b, _ := Seeded(42).Random(20, 0, 1000)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestDegenerateRange(t *testing.T) {
	arr, err := Seeded(3).Random(4, 7, 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range arr {
		if v != 7 {
			t.Fatalf("expected all 7, got %v", arr)
		}
	}
}

func TestPatterns(t *testing.T) {
	g := Seeded(9)

	rev, err := g.Generate(Reversed, 25, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !sort.SliceIsSorted(rev, func(i, j int) bool { return rev[i] > rev[j] }) {
		t.Errorf("reversed not non-increasing: %v", rev)
	}

	nearly, err := g.Generate(NearlySorted, 40, 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	inversions := 0
	for i := 1; i < len(nearly); i++ {
		if nearly[i] < nearly[i-1] {
			inversions++
		}
	}
	if inversions > 4 {
		t.Errorf("expected at most 4 adjacent inversions, got %d in %v", inversions, nearly)
	}

	few, err := g.Generate(FewUnique, 50, 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	distinct := map[int]bool{}
	for _, v := range few {
		distinct[v] = true
	}
	if len(distinct) > 5 {
		t.Errorf("expected at most 5 distinct values, got %d", len(distinct))
	}
}

func TestErrors(t *testing.T) {
	g := Seeded(1)
	tests := []struct {
		name    string
		pattern Pattern
		n       int
		min     int
		max     int
		want    error
	}{
		{"zero size", Random, 0, 1, 10, ErrInvalidSize},
		{"negative size", Reversed, -3, 1, 10, ErrInvalidSize},
		{"inverted range", NearlySorted, 5, 10, 1, ErrInvalidRange},
		{"few unique inverted", FewUnique, 5, 10, 1, ErrInvalidRange},
		{"unknown pattern", Pattern("zigzag"), 5, 1, 10, ErrUnknownPattern},
		{"range wider than int", Random, 3, 0, math.MaxInt, ErrInvalidRange},
		{"range spanning int", Reversed, 3, math.MinInt, math.MaxInt, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.pattern, tt.n, tt.min, tt.max)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParsePattern(t *testing.T) {
	tests := map[string]Pattern{
		"":              Random,
		"random":        Random,
		"Reversed":      Reversed,
		"nearly-sorted": NearlySorted,
		" few_unique ":  FewUnique,
	}
	for in, want := range tests {
		got, err := ParsePattern(in)
		if err != nil {
			t.Errorf("ParsePattern(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePattern(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParsePattern("spiral"); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("expected ErrUnknownPattern, got %v", err)
	}
}

type fixedSource struct{ v int }

func (f fixedSource) Intn(n int) int { return f.v % n }

func TestInjectedSource(t *testing.T) {
	g := NewGenerator(fixedSource{v: 2})
	arr, err := g.Random(3, 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range arr {
		if v != 12 {
			t.Fatalf("expected 12 from fixed source, got %v", arr)
		}
	}
}
