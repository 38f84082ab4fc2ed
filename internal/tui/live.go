package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/trace"
)

const (
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

var (
	dim       = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	white     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	teal      = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))
	yellow    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	green     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	roleStyle = map[trace.Role]lipgloss.Style{
		trace.RoleDefault:   teal,
		trace.RoleComparing: yellow,
		trace.RoleSwapping:  red,
		trace.RoleSorted:    green,
	}
)

// LiveRenderer draws each snapshot as a bar chart on a plain terminal. It
// implements playback.Renderer.
type LiveRenderer struct {
	out       io.Writer
	title     string
	total     int
	frameRate int
	ansi      bool

	mu        sync.Mutex
	lastFrame time.Time
	last      trace.Snapshot
	index     int
	done      chan struct{}
	finished  bool
}

// NewLiveRenderer writes frames to out. frameRate caps redraws per second;
// zero draws every step. When ansi is false the screen is not cleared
// between frames.
func NewLiveRenderer(out io.Writer, title string, total, frameRate int, ansi bool) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		title:     title,
		total:     total,
		frameRate: frameRate,
		ansi:      ansi,
		done:      make(chan struct{}),
	}
}

func (r *LiveRenderer) OnStep(index int, s trace.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last, r.index = s, index
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.draw()
}

func (r *LiveRenderer) OnFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	r.finished = true
	r.draw()
	fmt.Fprintf(r.out, "  %s\n", green.Render(fmt.Sprintf("sorted in %d steps", r.total)))
	close(r.done)
}

// Done is closed after OnFinished.
func (r *LiveRenderer) Done() <-chan struct{} { return r.done }

func (r *LiveRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.ansi {
		fmt.Fprint(r.out, showCursor)
	}
}

func (r *LiveRenderer) draw() {
	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	b.WriteString(Frame(r.title, r.index, r.total, r.last))
	fmt.Fprint(r.out, b.String())
}

// Frame renders one snapshot with a header and caption.
func Frame(title string, index, total int, s trace.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s\n", white.Render(title), dim.Render(fmt.Sprintf("step %d/%d", index+1, total))))
	b.WriteString(Bars(s, height))
	b.WriteString(fmt.Sprintf("  %s\n", dim.Render(s.Describe())))
	return b.String()
}

// Bars draws the array as vertical bars scaled to rows lines.
func Bars(s trace.Snapshot, rows int) string {
	if len(s.Array) == 0 || rows <= 0 {
		return ""
	}
	peak := 1
	for _, v := range s.Array {
		if v > peak {
			peak = v
		}
	}
	glyph := "██"
	if len(s.Array) > 40 {
		glyph = "█"
	}

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		b.WriteString("  ")
		for i, v := range s.Array {
			h := (v*rows + peak - 1) / peak
			if h >= row {
				b.WriteString(roleStyle[s.RoleOf(i)].Render(glyph))
			} else {
				b.WriteString(strings.Repeat(" ", len([]rune(glyph))))
			}
			if len(glyph) > len("█") {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
