package trace

// recorder owns the working array of one run and appends copy-on-record
// snapshots. The sorted mask only ever gains indices.
type recorder struct {
	arr    []int
	sorted []bool
	snaps  []Snapshot
}

func newRecorder(input []int) *recorder {
	return &recorder{
		arr:    cloneInts(input),
		sorted: make([]bool, len(input)),
		snaps:  make([]Snapshot, 0, 4*len(input)),
	}
}

func (r *recorder) emit(comparing, swapping []int) {
	r.snaps = append(r.snaps, Snapshot{
		Array:     cloneInts(r.arr),
		Comparing: cloneInts(comparing),
		Swapping:  cloneInts(swapping),
		Sorted:    r.sortedIndices(),
	})
}

func (r *recorder) frame()            { r.emit(nil, nil) }
func (r *recorder) compare(i, j int)  { r.emit([]int{i, j}, nil) }
func (r *recorder) swapping(i, j int) { r.emit(nil, []int{i, j}) }
func (r *recorder) placing(k int)     { r.emit(nil, []int{k}) }
func (r *recorder) exchange(i, j int) { r.arr[i], r.arr[j] = r.arr[j], r.arr[i] }

// mark adds indices to the sorted set and records a plain frame.
func (r *recorder) mark(idx ...int) {
	for _, i := range idx {
		r.sorted[i] = true
	}
	r.frame()
}

func (r *recorder) markRange(lo, hi int) {
	for i := lo; i <= hi; i++ {
		r.sorted[i] = true
	}
	r.frame()
}

func (r *recorder) sortedIndices() []int {
	out := make([]int, 0, len(r.sorted))
	for i, ok := range r.sorted {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// finish appends the terminal all-sorted frame unless the last frame
// already is one.
func (r *recorder) finish() {
	if n := len(r.snaps); n > 0 && r.snaps[n-1].Complete() {
		return
	}
	r.markRange(0, len(r.arr)-1)
}
