package trace

import (
	"fmt"
	"strings"
)

// Algorithm selects the sorting routine a trace is generated with.
type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Quick     Algorithm = "quick"
	Merge     Algorithm = "merge"
	Insertion Algorithm = "insertion"
	Selection Algorithm = "selection"
	Heap      Algorithm = "heap"
)

var sorters = map[Algorithm]func(r *recorder){
	Bubble:    bubbleSort,
	Quick:     quickSort,
	Merge:     mergeSort,
	Insertion: insertionSort,
	Selection: selectionSort,
	Heap:      heapSort,
}

// Algorithms lists every supported selector in display order.
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Quick, Merge, Insertion, Selection, Heap}
}

// ParseAlgorithm accepts "bubble", "Bubble", "bubble sort" and similar.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, " sort")
	name = strings.TrimSuffix(name, "sort")
	a := Algorithm(strings.TrimSpace(name))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return a, nil
}

func (a Algorithm) Valid() bool {
	_, ok := sorters[a]
	return ok
}

func (a Algorithm) String() string { return string(a) }

// Title is the human readable name, e.g. "Bubble Sort".
func (a Algorithm) Title() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:]) + " Sort"
}
