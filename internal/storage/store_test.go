package storage

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/trace"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tr := trace.MustGenerate(trace.Bubble, []int{5, 2, 8, 1, 9, 3})
	runID, err := st.Save(tr, RunOptions{Seed: 42, Pattern: "random", Speed: 50})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "bubble_") {
		t.Errorf("expected run id prefixed with algorithm, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Algorithm != "bubble" {
		t.Errorf("expected algorithm 'bubble', got '%s'", meta.Algorithm)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Stats.Steps != 36 {
		t.Errorf("expected 36 steps, got %d", meta.Stats.Steps)
	}

	loaded, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, tr) {
		t.Errorf("round trip changed the trace")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, alg := range []trace.Algorithm{trace.Quick, trace.Heap} {
		if _, err := st.Save(trace.MustGenerate(alg, []int{3, 1, 2}), RunOptions{}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(st.Dir(), "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestStoreErrors(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Save(nil, RunOptions{}); !errors.Is(err, trace.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	runID, err := st.Save(trace.MustGenerate(trace.Merge, []int{2, 1}), RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(st.Dir(), runID, snapshotsFile)
	if err := os.WriteFile(csvPath, []byte("index,kind,array,comparing,swapping,sorted\n0,idle,1 x,,,\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTrace(runID); !errors.Is(err, ErrCorruptRun) {
		t.Errorf("expected ErrCorruptRun, got %v", err)
	}
}

// rewriteRows saves a bubble run, lets edit change its CSV rows (header
// included) and writes them back.
func rewriteRows(t *testing.T, st *Store, edit func(rows [][]string)) string {
	t.Helper()
	runID, err := st.Save(trace.MustGenerate(trace.Bubble, []int{3, 1, 2}), RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(st.Dir(), runID, snapshotsFile)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 4 {
		t.Fatalf("expected at least 3 frames, got %d", len(rows)-1)
	}
	edit(rows)

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	return runID
}

func TestLoadTraceRejectsInconsistentFrames(t *testing.T) {
	tests := []struct {
		name string
		edit func(rows [][]string)
		want string
	}{
		{"short array", func(rows [][]string) { rows[2][2] = "1 3" }, "has 2 values"},
		{"long array", func(rows [][]string) { rows[2][2] = "3 1 2 4" }, "has 4 values"},
		{"comparing out of range", func(rows [][]string) { rows[1][3] = "0 7" }, "out of range"},
		{"negative swap index", func(rows [][]string) { rows[2][4] = "-1 0" }, "out of range"},
		{"sorted out of range", func(rows [][]string) { rows[len(rows)-1][5] = "0 1 2 3" }, "out of range"},
		{"sorted set shrinks", func(rows [][]string) { rows[1][5] = "0 1 2" }, "left the sorted set"},
		{"final frame highlighted", func(rows [][]string) { rows[len(rows)-1][3] = "0 1" }, "not complete"},
		{"final frame partly sorted", func(rows [][]string) {
			for _, row := range rows[1:] {
				row[5] = ""
			}
		}, "not complete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(t.TempDir())
			runID := rewriteRows(t, st, tt.edit)

			_, err := st.LoadTrace(runID)
			if !errors.Is(err, ErrCorruptRun) {
				t.Fatalf("expected ErrCorruptRun, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadTraceRejectsInputMismatch(t *testing.T) {
	st := New(t.TempDir())
	runID := rewriteRows(t, st, func(rows [][]string) {})

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	meta.Input = []int{3, 1}
	if err := writeMetadata(filepath.Join(st.Dir(), runID, metadataFile), *meta); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTrace(runID); !errors.Is(err, ErrCorruptRun) {
		t.Errorf("expected ErrCorruptRun, got %v", err)
	}
}

func TestSaveRemovesPartialRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	prev := newRunID
	t.Cleanup(func() { newRunID = prev })
	newRunID = func(trace.Algorithm) string { return "bubble_partial" }

	runDir := filepath.Join(st.Dir(), "bubble_partial")
	if err := os.MkdirAll(filepath.Join(runDir, snapshotsFile), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(trace.MustGenerate(trace.Bubble, []int{2, 1}), RunOptions{}); err == nil {
		t.Fatal("expected save to fail when snapshots cannot be written")
	}
	if _, err := os.Stat(runDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected run dir removed, stat returned %v", err)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs listed, got %d", len(runs))
	}
}
