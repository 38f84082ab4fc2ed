package export

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

func TestSnapshotSVGColors(t *testing.T) {
	s := trace.Snapshot{
		Array:     []int{4, 3, 2, 1},
		Comparing: []int{0},
		Swapping:  []int{1},
		Sorted:    []int{2},
	}
	svg := SnapshotSVG(s, 1)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if got := strings.Count(svg, "<rect x="); got != 4 {
		t.Errorf("expected 4 bars, got %d", got)
	}
	for _, c := range []string{ColorComparing, ColorSwapping, ColorSorted, ColorDefault} {
		if !strings.Contains(svg, `fill="`+c+`"`) {
			t.Errorf("missing fill %s", c)
		}
	}
}

func TestSnapshotSVGEmpty(t *testing.T) {
	if SnapshotSVG(trace.Snapshot{}, 1) != "" {
		t.Error("expected empty output for empty snapshot")
	}
}

func TestProgressSVG(t *testing.T) {
	tr := trace.MustGenerate(trace.Heap, []int{3, 1, 2})
	svg := ProgressSVG(tr, 300, 100, "#ffffff")
	if got := strings.Count(svg, " L"); got != tr.Len()-1 {
		t.Errorf("expected %d segments, got %d", tr.Len()-1, got)
	}
	// The final snapshot has every position sorted, so the line ends at the top.
	if !strings.Contains(svg, "L300.0,0.0") {
		t.Errorf("expected the line to end at the top right corner")
	}

	if ProgressSVG(trace.MustGenerate(trace.Heap, []int{1}), 300, 100, "#fff") != "" {
		t.Error("expected no chart for a single snapshot")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tr := trace.MustGenerate(trace.Quick, []int{9, 4, 7, 1})
	stats := metrics.Summarize(tr)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, tr, stats); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"algorithm": "quick"`) {
		t.Errorf("missing algorithm field in %s", buf.String())
	}

	got, gotStats, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(got, tr) {
		t.Error("trace changed across JSON")
	}
	if gotStats != stats {
		t.Errorf("stats changed: %+v vs %+v", gotStats, stats)
	}
}
