package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/api"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string

	size      int
	minValue  int
	maxValue  int
	pattern   string
	seed      int64
	speed     float64
	theme     string
	addr      string
	frameRate int
	save      bool
	asJSON    bool

	cfg       *config.Config
	logCloser io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "algoviz",
		Short:             "sorting algorithm trace and playback lab",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "auto", "log format (auto, text, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	addInputFlags(rootCmd)
	rootCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm] [values...]",
		Short: "generate a trace and print every snapshot",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTrace,
	}
	addInputFlags(traceCmd)
	traceCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")
	traceCmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON")

	playCmd := &cobra.Command{
		Use:   "play [algorithm] [values...]",
		Short: "play a trace with live terminal output",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlay,
	}
	addInputFlags(playCmd)
	playCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	playCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate cap")
	playCmd.Flags().BoolVar(&save, "save", false, "store the run under the data directory")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "play a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	replayCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate cap")

	tuiCmd := &cobra.Command{
		Use:   "tui [algorithm]",
		Short: "interactive visualizer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addInputFlags(tuiCmd)
	tuiCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed factor")
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms [algorithm]",
		Short: "list algorithms or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				pc := config.GetPreset(args[0], p)
				fmt.Printf("  %-8s size=%d pattern=%s speed=%g\n", p, pc.Input.Size, pc.Input.Pattern, pc.Playback.Speed)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config-init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP and WebSocket API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "default playback speed")

	rootCmd.AddCommand(traceCmd, playCmd, replayCmd, tuiCmd, algorithmsCmd, presetsCmd, configCmd, serveCmd)
	rootCmd.AddCommand(runCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&size, "size", config.DefaultSize, "array size")
	f.IntVar(&minValue, "min", config.DefaultMin, "smallest generated value")
	f.IntVar(&maxValue, "max", config.DefaultMax, "largest generated value")
	f.StringVar(&pattern, "pattern", config.DefaultPattern, "input pattern (random, reversed, nearly_sorted, few_unique)")
	f.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
}

// setup resolves the configuration (defaults, preset, file, flags in that
// order) and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if opts.File == "" && isInteractive(cmd) {
		opts.Output = io.Discard
	}
	logCloser, err = logging.Setup(opts)
	if err != nil {
		return err
	}
	slog.Debug("configuration resolved", "command", cmd.Name(), "algorithm", cfg.Algorithm, "size", cfg.Input.Size, "speed", cfg.Playback.Speed)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	c := config.DefaultConfig()

	if preset != "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("--preset needs an algorithm argument")
		}
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		c = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		c.Input.Size = size
	}
	if flags.Changed("min") {
		c.Input.Min = minValue
	}
	if flags.Changed("max") {
		c.Input.Max = maxValue
	}
	if flags.Changed("pattern") {
		c.Input.Pattern = pattern
	}
	if flags.Changed("seed") {
		c.Input.Seed = seed
	}
	if flags.Changed("speed") {
		c.Playback.Speed = speed
	}
	if flags.Changed("theme") {
		c.Theme = theme
	}
	if flags.Changed("addr") {
		c.Server.Addr = addr
	}
	if flags.Changed("data") || c.DataDir == "" {
		c.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}
	if flags.Changed("log-file") {
		c.Log.File = logFile
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// buildTrace generates the trace for args: an algorithm followed by
// optional explicit values. Without values the input comes from the
// configured generator.
func buildTrace(args []string) (*trace.Trace, input.Pattern, error) {
	alg, err := trace.ParseAlgorithm(args[0])
	if err != nil {
		return nil, "", err
	}

	if len(args) > 1 {
		values, err := parseValues(args[1:])
		if err != nil {
			return nil, "", err
		}
		tr, err := trace.Generate(alg, values)
		return tr, "", err
	}

	p, err := input.ParsePattern(cfg.Input.Pattern)
	if err != nil {
		return nil, "", err
	}
	gen := input.NewGenerator(nil)
	if cfg.Input.Seed != 0 {
		gen = input.Seeded(cfg.Input.Seed)
	}
	values, err := gen.Generate(p, cfg.Input.Size, cfg.Input.Min, cfg.Input.Max)
	if err != nil {
		return nil, "", err
	}
	tr, err := trace.Generate(alg, values)
	return tr, p, err
}

// parseValues accepts space or comma separated integers.
func parseValues(args []string) ([]int, error) {
	var out []int
	for _, a := range args {
		for _, f := range strings.FieldsFunc(a, func(r rune) bool { return r == ',' || r == ' ' }) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", trace.ErrInvalidInput, f)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func saveRun(tr *trace.Trace, p input.Pattern) (string, error) {
	st, err := openStore()
	if err != nil {
		return "", err
	}
	return st.Save(tr, storage.RunOptions{Seed: cfg.Input.Seed, Pattern: string(p), Speed: cfg.Playback.Speed})
}

func runTrace(cmd *cobra.Command, args []string) error {
	tr, p, err := buildTrace(args)
	if err != nil {
		return err
	}

	if save {
		runID, err := saveRun(tr, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}

	if asJSON {
		return writeJSON(os.Stdout, tr)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKIND\tARRAY\tSORTED\tACTION")
	for i, s := range tr.Snapshots {
		fmt.Fprintf(w, "%d\t%s\t%v\t%d\t%s\n", i, s.Kind(), s.Array, len(s.Sorted), s.Describe())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printStats(metrics.Summarize(tr))
	return nil
}

func printStats(st metrics.Stats) {
	fmt.Println("\nstats:")
	fmt.Printf("  algorithm:   %s\n", st.Algorithm)
	fmt.Printf("  size:        %d\n", st.Size)
	fmt.Printf("  steps:       %d\n", st.Steps)
	fmt.Printf("  comparisons: %d\n", st.Comparisons)
	fmt.Printf("  swaps:       %d\n", st.Swaps)
	fmt.Printf("  writes:      %d\n", st.Writes)
	fmt.Printf("  mark steps:  %d\n", st.MarkSteps)
}

func runPlay(cmd *cobra.Command, args []string) error {
	tr, p, err := buildTrace(args)
	if err != nil {
		return err
	}
	if save {
		runID, err := saveRun(tr, p)
		if err != nil {
			return err
		}
		slog.Info("run saved", "run_id", runID)
	}
	return playLive(cmd.Context(), tr)
}

// playLive drives a controller on the system clock and blocks until the
// trace finishes or the process is interrupted.
func playLive(ctx context.Context, tr *trace.Trace) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := tui.NewLiveRenderer(os.Stdout, tr.Algorithm.Title(), tr.Len(), frameRate, logging.IsTerminal(os.Stdout))
	ctl := playback.New(r,
		playback.WithBaseDelay(cfg.Playback.BaseDelay),
		playback.WithSpeed(cfg.Playback.Speed),
		playback.WithLogger(slog.Default()),
	)

	r.Start()
	defer r.Stop()
	if err := ctl.Start(tr); err != nil {
		return err
	}

	select {
	case <-r.Done():
		return nil
	case <-ctx.Done():
		ctl.Stop()
		fmt.Println("\ninterrupted")
		return nil
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts := viz.Options{
		Size:      cfg.Input.Size,
		Min:       cfg.Input.Min,
		Max:       cfg.Input.Max,
		Pattern:   input.Pattern(cfg.Input.Pattern),
		Seed:      cfg.Input.Seed,
		Speed:     cfg.Playback.Speed,
		BaseDelay: cfg.Playback.BaseDelay,
		Theme:     cfg.Theme,
		Logger:    slog.Default(),
	}
	if len(args) > 0 {
		alg, err := trace.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		opts.Algorithm = alg
	}
	return viz.Run(opts)
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		e, err := catalog.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", e.Name, e.Difficulty)
		fmt.Printf("%s\n\n", e.Description)
		fmt.Printf("  best:    %s\n", e.Complexity.Best)
		fmt.Printf("  average: %s\n", e.Complexity.Average)
		fmt.Printf("  worst:   %s\n", e.Complexity.Worst)
		fmt.Printf("  space:   %s\n", e.Complexity.Space)
		fmt.Printf("  stable:  %v\n", e.Stable)
		fmt.Printf("  inplace: %v\n", e.InPlace)
		fmt.Println("\nsteps:")
		for i, s := range e.Steps {
			fmt.Printf("  %d. %s\n", i+1, s)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tAVERAGE\tWORST\tSPACE\tSTABLE\tDIFFICULTY")
	for _, e := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
			e.Key, e.Name, e.Complexity.Average, e.Complexity.Worst, e.Complexity.Space, e.Stable, e.Difficulty)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	h := api.NewHandlers(api.Options{
		BaseDelay: cfg.Playback.BaseDelay,
		Speed:     cfg.Playback.Speed,
		Store:     st,
		Logger:    slog.Default(),
	})
	return api.Serve(ctx, cfg.Server.Addr, api.NewRouter(h), slog.Default())
}
