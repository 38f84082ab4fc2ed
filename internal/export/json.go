package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

// Document is the JSON form of a trace together with its statistics.
type Document struct {
	Algorithm string           `json:"algorithm"`
	Input     []int            `json:"input"`
	Steps     int              `json:"steps"`
	Stats     metrics.Stats    `json:"stats"`
	Snapshots []trace.Snapshot `json:"snapshots"`
}

func NewDocument(tr *trace.Trace, stats metrics.Stats) Document {
	return Document{
		Algorithm: string(tr.Algorithm),
		Input:     tr.Input,
		Steps:     tr.Len(),
		Stats:     stats,
		Snapshots: tr.Snapshots,
	}
}

func WriteJSON(w io.Writer, tr *trace.Trace, stats metrics.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(tr, stats))
}

// WriteJSONFile writes the document to path, or to stdout when path is "-".
func WriteJSONFile(path string, tr *trace.Trace, stats metrics.Stats) error {
	if path == "-" {
		return WriteJSON(os.Stdout, tr, stats)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, tr, stats)
}

// ReadJSON decodes a document written by WriteJSON back into a trace.
func ReadJSON(r io.Reader) (*trace.Trace, metrics.Stats, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, metrics.Stats{}, err
	}
	alg, err := trace.ParseAlgorithm(doc.Algorithm)
	if err != nil {
		return nil, metrics.Stats{}, err
	}
	return &trace.Trace{Algorithm: alg, Input: doc.Input, Snapshots: doc.Snapshots}, doc.Stats, nil
}
