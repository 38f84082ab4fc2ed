package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/bench"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	outPath   string
	stepIndex int
	svgScale  float64
	progress  bool
	benchSize string
)

func runCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and stats",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot sort progress of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one snapshot or the progress curve to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", -1, "snapshot index (-1 for the final snapshot)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 1, "bar scale")
	exportSVGCmd.Flags().BoolVar(&progress, "progress", false, "export the sorted-count curve instead of a snapshot")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithms...]",
		Short: "compare algorithms on identical inputs",
		RunE:  benchAlgorithms,
	}
	addInputFlags(benchCmd)
	benchCmd.Flags().StringVar(&benchSize, "sizes", "8,16,32,64,128", "comma separated input sizes")

	return []*cobra.Command{listCmd, showCmd, plotCmd, exportJSONCmd, exportSVGCmd, benchCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSTEPS\tPATTERN")
	for _, run := range runs {
		pattern := run.Pattern
		if pattern == "" {
			pattern = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Input),
			run.Stats.Steps,
			pattern,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("time: %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("input: %v\n", meta.Input)
	if meta.Seed != 0 {
		fmt.Printf("seed: %d\n", meta.Seed)
	}
	printStats(meta.Stats)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return playLive(cmd.Context(), tr)
}

// sortedCurve is the number of finalized positions at each snapshot.
func sortedCurve(tr *trace.Trace) []float64 {
	data := make([]float64, tr.Len())
	for i, s := range tr.Snapshots {
		data[i] = float64(len(s.Sorted))
	}
	return data
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("snapshots: %d\n\n", tr.Len())

	graph := asciigraph.Plot(sortedCurve(tr),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("sorted positions vs step"),
	)
	fmt.Println(graph)
	fmt.Println()

	final := tr.Final().Array
	values := make([]float64, len(final))
	for i, v := range final {
		values[i] = float64(v)
	}
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("final array"),
	))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteJSONFile(outPath, tr, meta.Stats); err != nil {
		return err
	}
	if outPath != "-" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	}
	return nil
}

func writeJSON(w io.Writer, tr *trace.Trace) error {
	return export.WriteJSON(w, tr, metrics.Summarize(tr))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	var svg string
	if progress {
		svg = export.ProgressSVG(tr, 800, 300, export.ColorSorted)
	} else {
		idx := stepIndex
		if idx < 0 {
			idx = tr.Len() - 1
		}
		if idx >= tr.Len() {
			return fmt.Errorf("step %d out of range (0..%d)", idx, tr.Len()-1)
		}
		svg = export.SnapshotSVG(tr.At(idx), svgScale)
	}

	if outPath == "-" {
		_, err = io.WriteString(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", outPath)
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid size %q", f)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Yellow,
	asciigraph.Blue, asciigraph.Magenta, asciigraph.Cyan,
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	algs := trace.Algorithms()
	if len(args) > 0 {
		algs = algs[:0:0]
		for _, a := range args {
			alg, err := trace.ParseAlgorithm(a)
			if err != nil {
				return err
			}
			algs = append(algs, alg)
		}
	}
	sizes, err := parseSizes(benchSize)
	if err != nil {
		return err
	}
	p, err := input.ParsePattern(cfg.Input.Pattern)
	if err != nil {
		return err
	}
	benchSeed := cfg.Input.Seed
	if benchSeed == 0 {
		benchSeed = time.Now().UnixNano()
	}

	results, err := bench.Run(cmd.Context(), bench.Config{
		Algorithms: algs,
		Sizes:      sizes,
		Pattern:    p,
		Min:        cfg.Input.Min,
		Max:        cfg.Input.Max,
		Seed:       benchSeed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("benchmarked %d algorithms on %s inputs (seed %d)\n\n", len(algs), p, benchSeed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSIZE\tSTEPS\tCOMPARISONS\tSWAPS\tWRITES\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			r.Algorithm, r.Size, r.Stats.Steps, r.Stats.Comparisons, r.Stats.Swaps, r.Stats.Writes, r.Elapsed.Round(time.Microsecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(sizes) < 2 {
		return nil
	}
	colors := make([]asciigraph.AnsiColor, len(algs))
	legends := make([]string, len(algs))
	for i, alg := range algs {
		colors[i] = seriesColors[i%len(seriesColors)]
		legends[i] = string(alg)
	}
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(bench.Series(results, algs),
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("comparisons vs input size"),
	))
	return nil
}
