package trace

func quickSort(r *recorder) {
	quickRange(r, 0, len(r.arr)-1)
}

func quickRange(r *recorder, low, high int) {
	if low >= high {
		return
	}
	p := partition(r, low, high)
	r.mark(p)
	quickRange(r, low, p-1)
	quickRange(r, p+1, high)
}

// partition is Lomuto with the last element as pivot.
func partition(r *recorder, low, high int) int {
	pivot := r.arr[high]
	i := low - 1
	for j := low; j < high; j++ {
		r.compare(j, high)
		if r.arr[j] < pivot {
			i++
			r.swapping(i, j)
			r.exchange(i, j)
			r.frame()
		}
	}
	r.swapping(i+1, high)
	r.exchange(i+1, high)
	r.frame()
	return i + 1
}

func mergeSort(r *recorder) {
	mergeRange(r, 0, len(r.arr)-1)
}

func mergeRange(r *recorder, start, end int) {
	if start >= end {
		return
	}
	mid := (start + end) / 2
	mergeRange(r, start, mid)
	mergeRange(r, mid+1, end)
	merge(r, start, mid, end)
	r.markRange(start, end)
}

func merge(r *recorder, start, mid, end int) {
	left := cloneInts(r.arr[start : mid+1])
	right := cloneInts(r.arr[mid+1 : end+1])

	i, j, k := 0, 0, start
	for i < len(left) && j < len(right) {
		r.compare(start+i, mid+1+j)
		if left[i] <= right[j] {
			r.arr[k] = left[i]
			i++
		} else {
			r.arr[k] = right[j]
			j++
		}
		r.placing(k)
		k++
	}
	for ; i < len(left); i, k = i+1, k+1 {
		r.arr[k] = left[i]
		r.placing(k)
	}
	for ; j < len(right); j, k = j+1, k+1 {
		r.arr[k] = right[j]
		r.placing(k)
	}
}

func heapSort(r *recorder) {
	n := len(r.arr)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(r, n, i)
	}
	for i := n - 1; i > 0; i-- {
		r.swapping(0, i)
		r.exchange(0, i)
		r.mark(i)
		siftDown(r, i, 0)
	}
	r.mark(0)
}

// siftDown restores the max-heap property of arr[:n] below root i.
func siftDown(r *recorder, n, i int) {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n {
			r.compare(largest, left)
			if r.arr[left] > r.arr[largest] {
				largest = left
			}
		}
		if right < n {
			r.compare(largest, right)
			if r.arr[right] > r.arr[largest] {
				largest = right
			}
		}
		if largest == i {
			return
		}
		r.swapping(i, largest)
		r.exchange(i, largest)
		r.frame()
		i = largest
	}
}
