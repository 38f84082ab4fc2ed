package trace_test

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/trace"
)

// ExampleGenerate records a bubble sort over a small array and prints the
// first comparison and the final frame.
func ExampleGenerate() {
	tr, err := trace.Generate(trace.Bubble, []int{5, 2, 8, 1, 9, 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(tr.At(1).Comparing, tr.At(1).Describe())
	fmt.Println(tr.Final().Array, tr.Final().Describe())
	fmt.Println(tr.Len(), "snapshots")
	// Output:
	// [0 1] comparing elements
	// [1 2 3 5 8 9] array sorted
	// 36 snapshots
}
