package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrCorruptRun  = errors.New("storage: corrupt run")
)

const (
	metadataFile  = "metadata.json"
	snapshotsFile = "snapshots.csv"
)

var csvHeader = []string{"index", "kind", "array", "comparing", "swapping", "sorted"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string        `json:"id"`
	Algorithm string        `json:"algorithm"`
	Timestamp time.Time     `json:"timestamp"`
	Seed      int64         `json:"seed"`
	Pattern   string        `json:"pattern,omitempty"`
	Speed     float64       `json:"speed,omitempty"`
	Input     []int         `json:"input"`
	Stats     metrics.Stats `json:"stats"`
}

var newRunID = func(alg trace.Algorithm) string {
	return fmt.Sprintf("%s_%s", alg, uuid.NewString()[:8])
}

// RunOptions carries the generation parameters recorded next to a trace.
type RunOptions struct {
	Seed    int64
	Pattern string
	Speed   float64
}

// Save writes tr to a new run directory and returns the run ID.
func (s *Store) Save(tr *trace.Trace, opts RunOptions) (string, error) {
	if tr.Len() == 0 {
		return "", fmt.Errorf("%w: nothing to save", trace.ErrInvalidInput)
	}
	runID := newRunID(tr.Algorithm)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: string(tr.Algorithm),
		Timestamp: time.Now(),
		Seed:      opts.Seed,
		Pattern:   opts.Pattern,
		Speed:     opts.Speed,
		Input:     tr.Input,
		Stats:     metrics.Summarize(tr),
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeSnapshots(filepath.Join(runDir, snapshotsFile), tr); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSnapshots(path string, tr *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for i, snap := range tr.Snapshots {
		row := []string{
			strconv.Itoa(i),
			snap.Kind().String(),
			joinInts(snap.Array),
			joinInts(snap.Comparing),
			joinInts(snap.Swapping),
			joinInts(snap.Sorted),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first. A missing base directory
// is an empty store.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	return &meta, nil
}

// LoadTrace rebuilds the trace recorded under runID.
func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	alg, err := trace.ParseAlgorithm(meta.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, snapshotsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s has no snapshots", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s has no snapshots", ErrCorruptRun, runID)
	}

	tr := &trace.Trace{
		Algorithm: alg,
		Input:     meta.Input,
		Snapshots: make([]trace.Snapshot, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		snap, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
		}
		tr.Snapshots = append(tr.Snapshots, snap)
	}
	if err := validateTrace(tr); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	return tr, nil
}

// validateTrace checks what a recorder guarantees: every frame has the
// input's length, highlights point inside the array, the sorted set only
// grows, and the last frame is fully sorted.
func validateTrace(tr *trace.Trace) error {
	n := len(tr.Snapshots[0].Array)
	if n == 0 {
		return errors.New("empty array")
	}
	if len(tr.Input) != n {
		return fmt.Errorf("input has %d values, frames have %d", len(tr.Input), n)
	}

	var prev map[int]bool
	for i, snap := range tr.Snapshots {
		if len(snap.Array) != n {
			return fmt.Errorf("frame %d has %d values, want %d", i, len(snap.Array), n)
		}
		for _, set := range [][]int{snap.Comparing, snap.Swapping, snap.Sorted} {
			for _, idx := range set {
				if idx < 0 || idx >= n {
					return fmt.Errorf("frame %d: index %d out of range", i, idx)
				}
			}
		}
		sorted := make(map[int]bool, len(snap.Sorted))
		for _, idx := range snap.Sorted {
			sorted[idx] = true
		}
		for idx := range prev {
			if !sorted[idx] {
				return fmt.Errorf("frame %d: index %d left the sorted set", i, idx)
			}
		}
		prev = sorted
	}

	last := tr.Final()
	if len(prev) != n || len(last.Comparing) > 0 || len(last.Swapping) > 0 {
		return errors.New("final frame is not complete")
	}
	return nil
}

func parseRow(rec []string) (trace.Snapshot, error) {
	var (
		snap trace.Snapshot
		err  error
	)
	if snap.Array, err = splitInts(rec[2]); err != nil {
		return snap, err
	}
	if snap.Comparing, err = splitInts(rec[3]); err != nil {
		return snap, err
	}
	if snap.Swapping, err = splitInts(rec[4]); err != nil {
		return snap, err
	}
	if snap.Sorted, err = splitInts(rec[5]); err != nil {
		return snap, err
	}
	return snap, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func splitInts(field string) ([]int, error) {
	fields := strings.Fields(field)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
