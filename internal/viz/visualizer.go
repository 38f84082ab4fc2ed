package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	frameInterval = time.Second / 60
	// maxFrameGap bounds how much virtual time one frame may advance, so a
	// suspended terminal does not fast-forward the whole run on wake-up.
	maxFrameGap = 250 * time.Millisecond
	barRows     = 16
	sidebarW    = 34
	minSpeed    = 1.0
	maxSpeed    = 1000.0
	speedFactor = 1.5
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// frameState is written by the playback renderer and read by View.
type frameState struct {
	index    int
	snap     trace.Snapshot
	finished bool
	progress []float64
}

func (f *frameState) OnStep(index int, s trace.Snapshot) {
	f.index, f.snap, f.finished = index, s, false
	if index < len(f.progress) {
		f.progress = f.progress[:index]
	}
	f.progress = append(f.progress, float64(len(s.Sorted)))
}

func (f *frameState) OnFinished() { f.finished = true }

func (f *frameState) idle(arr []int) {
	f.index, f.finished, f.progress = 0, false, nil
	f.snap = trace.Snapshot{Array: arr}
}

// Visualizer animates one algorithm over one array. Playback runs on a
// ManualClock that only moves on frame ticks, so controller callbacks never
// race with Update.
type Visualizer struct {
	opts  Options
	alg   trace.Algorithm
	gen   *input.Generator
	arr   []int
	clock *playback.ManualClock
	ctl   *playback.Controller
	frame *frameState
	tr    *trace.Trace
	stats metrics.Stats

	theme    Theme
	st       styles
	help     help.Model
	showHelp bool
	lastTick time.Time
	status   string
	width    int
}

func NewVisualizer(opts Options) Visualizer {
	opts = opts.withDefaults()
	clock := playback.NewManualClock()
	frame := &frameState{}
	v := Visualizer{
		opts:  opts,
		alg:   opts.Algorithm,
		gen:   opts.generator(),
		clock: clock,
		frame: frame,
		ctl: playback.New(frame,
			playback.WithClock(clock),
			playback.WithBaseDelay(opts.BaseDelay),
			playback.WithSpeed(opts.Speed),
			playback.WithLogger(opts.Logger),
		),
		theme: GetTheme(opts.Theme),
		help:  help.New(),
		width: 100,
	}
	v.st = newStyles(v.theme)
	v.regenerate()
	return v
}

func (v *Visualizer) regenerate() {
	arr, err := v.gen.Generate(v.opts.Pattern, v.opts.Size, v.opts.Min, v.opts.Max)
	if err != nil {
		v.status = err.Error()
		arr = []int{v.opts.Min}
	}
	v.arr = arr
	v.tr, v.stats = nil, metrics.Stats{}
	v.frame.idle(arr)
}

func (v Visualizer) Update(msg tea.Msg) (Visualizer, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		if !v.lastTick.IsZero() {
			elapsed := now.Sub(v.lastTick)
			if elapsed > maxFrameGap {
				elapsed = maxFrameGap
			}
			if elapsed > 0 {
				v.clock.Advance(elapsed)
			}
		}
		v.lastTick = now
		if v.frame.finished && v.status == "" {
			v.status = fmt.Sprintf("sorted in %d steps", v.tr.Len())
		}
		return v, nil

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width

	case tea.KeyMsg:
		v.handleKey(msg)
	}
	return v, nil
}

func (v *Visualizer) handleKey(msg tea.KeyMsg) {
	var err error
	switch {
	case key.Matches(msg, keys.Toggle):
		err = v.toggle()
	case key.Matches(msg, keys.Start):
		err = v.start()
	case key.Matches(msg, keys.Stop):
		v.stop()
	case key.Matches(msg, keys.NewArray):
		v.ctl.Stop()
		v.regenerate()
	case key.Matches(msg, keys.StepBack):
		err = v.ctl.StepBackward()
	case key.Matches(msg, keys.StepFwd):
		err = v.ctl.StepForward()
	case key.Matches(msg, keys.Faster):
		err = v.setSpeed(v.ctl.Speed() * speedFactor)
	case key.Matches(msg, keys.Slower):
		err = v.setSpeed(v.ctl.Speed() / speedFactor)
	case key.Matches(msg, keys.Theme):
		v.theme = NextTheme(v.theme.Name)
		v.st = newStyles(v.theme)
	case key.Matches(msg, keys.Algorithm):
		v.nextAlgorithm()
	case key.Matches(msg, keys.Help):
		v.showHelp = !v.showHelp
		v.help.ShowAll = v.showHelp
	default:
		return
	}
	if err != nil {
		var te *playback.TransitionError
		if errors.As(err, &te) {
			v.status = fmt.Sprintf("cannot %s while %s", te.Op, te.From)
		} else {
			v.status = err.Error()
		}
	}
}

func (v *Visualizer) start() error {
	switch v.ctl.State() {
	case playback.Running, playback.Paused:
		return nil
	}
	tr, err := trace.Generate(v.alg, v.arr)
	if err != nil {
		return err
	}
	v.tr, v.stats = tr, metrics.Summarize(tr)
	v.status = ""
	v.frame.idle(v.arr)
	return v.ctl.Start(tr)
}

func (v *Visualizer) toggle() error {
	switch v.ctl.State() {
	case playback.Running:
		return v.ctl.Pause()
	case playback.Paused:
		return v.ctl.Resume()
	}
	return v.start()
}

func (v *Visualizer) stop() {
	v.ctl.Stop()
	v.tr, v.stats, v.status = nil, metrics.Stats{}, ""
	v.frame.idle(v.arr)
}

func (v *Visualizer) setSpeed(s float64) error {
	if s < minSpeed {
		s = minSpeed
	}
	if s > maxSpeed {
		s = maxSpeed
	}
	return v.ctl.SetSpeed(s)
}

func (v *Visualizer) nextAlgorithm() {
	algs := trace.Algorithms()
	for i, a := range algs {
		if a == v.alg {
			v.alg = algs[(i+1)%len(algs)]
			break
		}
	}
	v.stop()
}

func (v Visualizer) View() string {
	st := v.st
	var b strings.Builder

	b.WriteString(GradientText("ALGOVIZ", v.theme.Primary, v.theme.Accent))
	b.WriteString("  " + st.selected.Render(v.alg.Title()) + "\n")
	b.WriteString(v.statusLine() + "\n\n")
	b.WriteString(v.bars())
	b.WriteString(st.subtle.Render(v.frame.snap.Describe()) + "\n")

	main := b.String()
	view := lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", st.panel.Render(v.sidebar()))

	var out strings.Builder
	out.WriteString(view + "\n")
	if v.status != "" {
		out.WriteString(st.done.Render(v.status) + "\n")
	}
	out.WriteString(v.help.View(keys))
	return out.String()
}

func (v Visualizer) statusLine() string {
	st := v.st
	var label string
	switch v.ctl.State() {
	case playback.Running:
		label = st.running.Render("RUNNING")
	case playback.Paused:
		label = st.paused.Render("PAUSED")
	case playback.Completed:
		label = st.done.Render("DONE")
	default:
		label = st.subtle.Render("READY")
	}
	steps := "-"
	if v.tr != nil {
		steps = fmt.Sprintf("%d/%d", v.frame.index+1, v.tr.Len())
	}
	return fmt.Sprintf("%s  %s %s  %s %s",
		label,
		st.subtle.Render("step"), st.value.Render(steps),
		st.subtle.Render("speed"), st.value.Render(fmt.Sprintf("%.0fx", v.ctl.Speed())))
}

func (v Visualizer) bars() string {
	s := v.frame.snap
	n := len(s.Array)
	if n == 0 {
		return ""
	}
	peak := 1
	for _, x := range s.Array {
		if x > peak {
			peak = x
		}
	}

	avail := v.width - sidebarW - 6
	glyph, gap := "██", " "
	switch {
	case n*3 <= avail:
	case n*2 <= avail:
		glyph = "█"
	default:
		glyph, gap = "█", ""
	}
	blank := strings.Repeat(" ", len([]rune(glyph)))

	var b strings.Builder
	for row := barRows; row >= 1; row-- {
		for i, x := range s.Array {
			h := (x*barRows + peak - 1) / peak
			if h >= row {
				b.WriteString(v.st.bars[s.RoleOf(i)].Render(glyph))
			} else {
				b.WriteString(blank)
			}
			b.WriteString(gap)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v Visualizer) sidebar() string {
	st := v.st
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	if e, err := catalog.Get(string(v.alg)); err == nil {
		b.WriteString(st.title.Render(e.Name) + "\n")
		b.WriteString(st.subtle.Render(e.Category) + "\n")
		b.WriteString(separator(sidebarW-4, st.subtle) + "\n")
		row("time", e.Complexity.Average)
		row("space", e.Complexity.Space)
		row("stable", fmt.Sprintf("%t", e.Stable))
		row("difficulty", string(e.Difficulty))
		b.WriteString(separator(sidebarW-4, st.subtle) + "\n")
	}

	row("size", fmt.Sprintf("%d", len(v.arr)))
	if v.tr != nil {
		row("comparisons", fmt.Sprintf("%d", v.stats.Comparisons))
		row("swaps", fmt.Sprintf("%d", v.stats.Swaps))
		row("writes", fmt.Sprintf("%d", v.stats.Writes))
		pct := float64(v.frame.index) / float64(max(v.tr.Len()-1, 1))
		b.WriteString("\n" + ProgressBar(pct, sidebarW-4, st.running) + "\n")
	}

	if len(v.frame.progress) > 1 {
		chart := asciigraph.Plot(v.frame.progress,
			asciigraph.Height(4),
			asciigraph.Width(sidebarW-10),
			asciigraph.Caption("sorted positions"))
		b.WriteString("\n" + st.subtle.Render(chart) + "\n")
	}
	return b.String()
}
