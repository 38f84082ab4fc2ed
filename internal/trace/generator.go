package trace

import "fmt"

// Generate runs alg against a copy of input and returns every recorded
// frame. The first frame is the untouched input, the last one has every
// index sorted. A single-element input yields exactly one, already sorted,
// frame.
func Generate(alg Algorithm, input []int) (*Trace, error) {
	sortFn, ok := sorters[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	}

	r := newRecorder(input)
	if len(input) == 1 {
		r.mark(0)
	} else {
		r.frame()
		sortFn(r)
		r.finish()
	}

	return &Trace{
		Algorithm: alg,
		Input:     cloneInts(input),
		Snapshots: r.snaps,
	}, nil
}

// MustGenerate is Generate for inputs known to be valid.
func MustGenerate(alg Algorithm, input []int) *Trace {
	tr, err := Generate(alg, input)
	if err != nil {
		panic(err)
	}
	return tr
}
