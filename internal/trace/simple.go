package trace

func bubbleSort(r *recorder) {
	n := len(r.arr)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			r.compare(j, j+1)
			if r.arr[j] > r.arr[j+1] {
				r.swapping(j, j+1)
				r.exchange(j, j+1)
				r.frame()
			}
		}
		r.mark(n - 1 - i)
	}
}

func selectionSort(r *recorder) {
	n := len(r.arr)
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.compare(minIdx, j)
			if r.arr[j] < r.arr[minIdx] {
				minIdx = j
			}
		}
		if minIdx != i {
			r.swapping(i, minIdx)
			r.exchange(i, minIdx)
		}
		r.mark(i)
	}
}

// insertionSort moves the key left one exchange at a time so every frame
// holds a permutation of the input.
func insertionSort(r *recorder) {
	n := len(r.arr)
	for i := 1; i < n; i++ {
		r.compare(i, i-1)
		for j := i - 1; j >= 0 && r.arr[j] > r.arr[j+1]; j-- {
			r.swapping(j, j+1)
			r.exchange(j, j+1)
			if j > 0 {
				r.compare(j-1, j)
			} else {
				r.frame()
			}
		}
		r.markRange(0, i)
	}
}
