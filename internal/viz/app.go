package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

// Options seeds the interactive app. Zero fields take defaults.
type Options struct {
	// Algorithm, when set, skips the menu.
	Algorithm trace.Algorithm
	Size      int
	Min       int
	Max       int
	Pattern   input.Pattern
	// Seed 0 seeds from the wall clock.
	Seed      int64
	Speed     float64
	BaseDelay time.Duration
	Theme     string
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Algorithm == "" {
		o.Algorithm = trace.Bubble
	}
	if o.Size <= 0 {
		o.Size = input.DefaultSize
	}
	if o.Min == 0 && o.Max == 0 {
		o.Min, o.Max = input.DefaultMin, input.DefaultMax
	}
	if o.Pattern == "" {
		o.Pattern = input.Random
	}
	if o.Speed <= 0 {
		o.Speed = playback.DefaultSpeed
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = playback.DefaultBaseDelay
	}
	if o.Theme == "" {
		o.Theme = ThemeRetro.Name
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) generator() *input.Generator {
	if o.Seed != 0 {
		return input.Seeded(o.Seed)
	}
	return input.NewGenerator(nil)
}

type screen int

const (
	screenMenu screen = iota
	screenVisualizer
)

// App is the top-level bubbletea model: an algorithm menu in front of the
// visualizer.
type App struct {
	opts    Options
	screen  screen
	cursor  int
	entries []catalog.Entry
	vis     Visualizer
	help    help.Model
	theme   Theme
	width   int
}

func NewApp(opts Options) App {
	skipMenu := opts.Algorithm != ""
	opts = opts.withDefaults()
	a := App{
		opts:    opts,
		entries: catalog.List(),
		help:    help.New(),
		theme:   GetTheme(opts.Theme),
		width:   100,
	}
	for i, e := range a.entries {
		if e.Key == opts.Algorithm {
			a.cursor = i
		}
	}
	if skipMenu {
		a.vis = NewVisualizer(opts)
		a.screen = screenVisualizer
	}
	return a
}

func (a App) Init() tea.Cmd { return tick() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if a.screen == screenVisualizer {
			a.vis, _ = a.vis.Update(msg)
		}
		return a, tick()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		if a.screen == screenVisualizer {
			a.vis, _ = a.vis.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if a.screen == screenMenu {
			return a.menuKey(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			a.vis.ctl.Stop()
			return a, tea.Quit
		case key.Matches(msg, keys.Back):
			a.vis.ctl.Stop()
			a.theme = a.vis.theme
			a.screen = screenMenu
			return a, nil
		}
		var cmd tea.Cmd
		a.vis, cmd = a.vis.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return a, tea.Quit
	case key.Matches(msg, menuKeys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, menuKeys.Down):
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case key.Matches(msg, menuKeys.Select):
		opts := a.opts
		opts.Algorithm = a.entries[a.cursor].Key
		opts.Theme = a.theme.Name
		a.vis = NewVisualizer(opts)
		a.vis.width = a.width
		a.vis.help.Width = a.width
		a.screen = screenVisualizer
	}
	return a, nil
}

func (a App) View() string {
	if a.screen == screenVisualizer {
		return a.vis.View()
	}
	return a.viewMenu()
}

func (a App) viewMenu() string {
	st := newStyles(a.theme)
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("ALGOVIZ", a.theme.Primary, a.theme.Accent) + "\n")
	b.WriteString("    " + st.subtle.Render("sorting algorithm visualizer") + "\n")
	b.WriteString("    " + separator(28, st.subtle) + "\n\n")

	for i, e := range a.entries {
		name := fmt.Sprintf("%-16s", e.Name)
		blurb := e.Complexity.Average
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				st.title.Render("▸"), st.selected.Render(name), st.value.Render(blurb)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.subtle.Render(name), st.subtle.Render(blurb)))
		}
	}

	if len(a.entries) > 0 {
		desc := lipgloss.NewStyle().Width(60).Foreground(a.theme.Text).Render(a.entries[a.cursor].Description)
		b.WriteString("\n" + indent(desc, "    ") + "\n")
	}
	b.WriteString("\n    " + a.help.View(menuKeys) + "\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// Run starts the app on the alternate screen and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(NewApp(opts), tea.WithAltScreen()).Run()
	return err
}
