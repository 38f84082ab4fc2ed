package trace

// Kind classifies what a snapshot highlights.
type Kind int

const (
	KindIdle Kind = iota
	KindCompare
	KindSwap
	KindPlace
)

func (k Kind) String() string {
	switch k {
	case KindCompare:
		return "compare"
	case KindSwap:
		return "swap"
	case KindPlace:
		return "place"
	default:
		return "idle"
	}
}

// Snapshot is one recorded frame of a sort run. Slices are owned by the
// snapshot and must be treated as read-only.
type Snapshot struct {
	Array     []int `json:"array"`
	Comparing []int `json:"comparing"`
	Swapping  []int `json:"swapping"`
	Sorted    []int `json:"sorted"`
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Array:     cloneInts(s.Array),
		Comparing: cloneInts(s.Comparing),
		Swapping:  cloneInts(s.Swapping),
		Sorted:    cloneInts(s.Sorted),
	}
}

func (s Snapshot) Kind() Kind {
	switch {
	case len(s.Comparing) > 0:
		return KindCompare
	case len(s.Swapping) == 1:
		return KindPlace
	case len(s.Swapping) > 1:
		return KindSwap
	default:
		return KindIdle
	}
}

// IsSorted reports whether index i is in its final position.
func (s Snapshot) IsSorted(i int) bool {
	return contains(s.Sorted, i)
}

// Role is how a single bar is highlighted in a snapshot.
type Role int

const (
	RoleDefault Role = iota
	RoleComparing
	RoleSwapping
	RoleSorted
)

// RoleOf resolves overlapping highlights for index i. Sorted wins over
// swapping, which wins over comparing.
func (s Snapshot) RoleOf(i int) Role {
	switch {
	case s.IsSorted(i):
		return RoleSorted
	case contains(s.Swapping, i):
		return RoleSwapping
	case contains(s.Comparing, i):
		return RoleComparing
	}
	return RoleDefault
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Complete reports whether every index is sorted and nothing is highlighted.
func (s Snapshot) Complete() bool {
	return len(s.Sorted) == len(s.Array) && len(s.Comparing) == 0 && len(s.Swapping) == 0
}

// Describe returns a short caption for the frame.
func (s Snapshot) Describe() string {
	switch s.Kind() {
	case KindCompare:
		return "comparing elements"
	case KindSwap:
		return "swapping elements"
	case KindPlace:
		return "placing merged value"
	}
	if s.Complete() {
		return "array sorted"
	}
	if len(s.Sorted) == 0 {
		return "initial array"
	}
	return "marking sorted positions"
}

// Trace is the full recorded sequence of snapshots for one
// (algorithm, input) pair.
type Trace struct {
	Algorithm Algorithm  `json:"algorithm"`
	Input     []int      `json:"input"`
	Snapshots []Snapshot `json:"snapshots"`
}

func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Snapshots)
}

func (t *Trace) At(i int) Snapshot { return t.Snapshots[i] }

func (t *Trace) First() Snapshot { return t.Snapshots[0] }

func (t *Trace) Final() Snapshot { return t.Snapshots[len(t.Snapshots)-1] }

func cloneInts(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}
