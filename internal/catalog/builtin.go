package catalog

import "github.com/san-kum/algoviz/internal/trace"

var builtin = []Entry{
	{
		Key:         trace.Bubble,
		Name:        "Bubble Sort",
		Category:    sorting,
		Description: "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
		Complexity:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"},
		Stable:      true,
		InPlace:     true,
		Difficulty:  Easy,
		Steps: []string{
			"Compare adjacent elements",
			"Swap if they are in wrong order",
			"Repeat until no swaps are needed",
			"The largest element bubbles to the end",
		},
	},
	{
		Key:         trace.Quick,
		Name:        "Quick Sort",
		Category:    sorting,
		Description: "Divide and conquer: picks the last element as a pivot and partitions the array around it.",
		Complexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n²)", Space: "O(log n)"},
		Stable:      false,
		InPlace:     true,
		Difficulty:  Medium,
		Steps: []string{
			"Choose a pivot element",
			"Partition array around pivot",
			"Recursively sort sub-arrays",
			"Combine the results",
		},
	},
	{
		Key:         trace.Merge,
		Name:        "Merge Sort",
		Category:    sorting,
		Description: "Divide and conquer: splits the array in halves, sorts each half and merges them back in order.",
		Complexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)", Space: "O(n)"},
		Stable:      true,
		InPlace:     false,
		Difficulty:  Medium,
		Steps: []string{
			"Split the array into two halves",
			"Recursively sort each half",
			"Merge the sorted halves",
		},
	},
	{
		Key:         trace.Insertion,
		Name:        "Insertion Sort",
		Category:    sorting,
		Description: "Builds the sorted prefix one element at a time by moving each new element left until it is in place.",
		Complexity:  Complexity{Best: "O(n)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"},
		Stable:      true,
		InPlace:     true,
		Difficulty:  Easy,
		Steps: []string{
			"Take the next unsorted element",
			"Shift it left past larger elements",
			"Grow the sorted prefix by one",
		},
	},
	{
		Key:         trace.Selection,
		Name:        "Selection Sort",
		Category:    sorting,
		Description: "Repeatedly selects the minimum of the unsorted suffix and swaps it to the front.",
		Complexity:  Complexity{Best: "O(n²)", Average: "O(n²)", Worst: "O(n²)", Space: "O(1)"},
		Stable:      false,
		InPlace:     true,
		Difficulty:  Easy,
		Steps: []string{
			"Scan the unsorted part for the minimum",
			"Swap it with the first unsorted element",
			"Advance the boundary by one",
		},
	},
	{
		Key:         trace.Heap,
		Name:        "Heap Sort",
		Category:    sorting,
		Description: "Builds a max heap, then repeatedly moves the root to the end and restores the heap on the rest.",
		Complexity:  Complexity{Best: "O(n log n)", Average: "O(n log n)", Worst: "O(n log n)", Space: "O(1)"},
		Stable:      false,
		InPlace:     true,
		Difficulty:  Hard,
		Steps: []string{
			"Build a max heap from the array",
			"Swap the root with the last element",
			"Shrink the heap and sift the new root down",
			"Repeat until the heap is empty",
		},
	},
}
