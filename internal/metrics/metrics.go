// Package metrics derives operation counts from a recorded trace.
package metrics

import "github.com/san-kum/algoviz/internal/trace"

// Metric observes snapshots in order and reports a single value.
type Metric interface {
	Name() string
	Observe(s trace.Snapshot)
	Value() float64
	Reset()
}

type Comparisons struct{ n int }

func NewComparisons() *Comparisons { return &Comparisons{} }

func (c *Comparisons) Name() string { return "comparisons" }

func (c *Comparisons) Observe(s trace.Snapshot) {
	if s.Kind() == trace.KindCompare {
		c.n++
	}
}

func (c *Comparisons) Value() float64 { return float64(c.n) }
func (c *Comparisons) Reset()         { c.n = 0 }

// Swaps counts frames that highlight a pair about to be exchanged.
type Swaps struct{ n int }

func NewSwaps() *Swaps { return &Swaps{} }

func (m *Swaps) Name() string { return "swaps" }

func (m *Swaps) Observe(s trace.Snapshot) {
	if s.Kind() == trace.KindSwap && len(s.Swapping) == 2 {
		m.n++
	}
}

func (m *Swaps) Value() float64 { return float64(m.n) }
func (m *Swaps) Reset()         { m.n = 0 }

// Writes counts array positions whose value changed between consecutive
// snapshots.
type Writes struct {
	prev []int
	n    int
}

func NewWrites() *Writes { return &Writes{} }

func (w *Writes) Name() string { return "writes" }

func (w *Writes) Observe(s trace.Snapshot) {
	if w.prev != nil && len(w.prev) == len(s.Array) {
		for i, v := range s.Array {
			if w.prev[i] != v {
				w.n++
			}
		}
	}
	w.prev = s.Array
}

func (w *Writes) Value() float64 { return float64(w.n) }

func (w *Writes) Reset() {
	w.prev = nil
	w.n = 0
}

// MarkSteps counts snapshots that grew the sorted set.
type MarkSteps struct {
	last int
	n    int
}

func NewMarkSteps() *MarkSteps { return &MarkSteps{} }

func (m *MarkSteps) Name() string { return "mark_steps" }

func (m *MarkSteps) Observe(s trace.Snapshot) {
	if len(s.Sorted) > m.last {
		m.n++
	}
	m.last = len(s.Sorted)
}

func (m *MarkSteps) Value() float64 { return float64(m.n) }

func (m *MarkSteps) Reset() {
	m.last = 0
	m.n = 0
}

// Collect runs every metric over tr from a fresh state and returns the
// values keyed by metric name.
func Collect(tr *trace.Trace, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < tr.Len(); i++ {
		s := tr.At(i)
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

type Stats struct {
	Algorithm   string `json:"algorithm"`
	Size        int    `json:"size"`
	Steps       int    `json:"steps"`
	Comparisons int    `json:"comparisons"`
	Swaps       int    `json:"swaps"`
	Writes      int    `json:"writes"`
	MarkSteps   int    `json:"mark_steps"`
}

func Summarize(tr *trace.Trace) Stats {
	cmp, sw, wr, mk := NewComparisons(), NewSwaps(), NewWrites(), NewMarkSteps()
	Collect(tr, cmp, sw, wr, mk)
	st := Stats{
		Steps:       tr.Len(),
		Comparisons: int(cmp.Value()),
		Swaps:       int(sw.Value()),
		Writes:      int(wr.Value()),
		MarkSteps:   int(mk.Value()),
	}
	if tr != nil {
		st.Algorithm = string(tr.Algorithm)
		st.Size = len(tr.Input)
	}
	return st
}
