package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme for the visualizer. The four bar colors follow
// the roles a snapshot assigns to each index.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
}

var (
	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#ff71ce"), // Pink
		Accent:    lipgloss.Color("#01cdfe"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Bar:       lipgloss.Color("#2ec4b6"), // Teal
		Comparing: lipgloss.Color("#ffd166"),
		Swapping:  lipgloss.Color("#ef476f"),
		Sorted:    lipgloss.Color("#06d6a0"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Bar:       lipgloss.Color("#00a8cc"),
		Comparing: lipgloss.Color("#ffcc00"),
		Swapping:  lipgloss.Color("#ff4444"),
		Sorted:    lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Bar:       lipgloss.Color("#feca57"),
		Comparing: lipgloss.Color("#48dbfb"),
		Swapping:  lipgloss.Color("#ff4757"),
		Sorted:    lipgloss.Color("#5fd068"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Bar:       lipgloss.Color("#777777"),
		Comparing: lipgloss.Color("#bbbbbb"),
		Swapping:  lipgloss.Color("#eeeeee"),
		Sorted:    lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{
		ThemeRetro,
		ThemeOcean,
		ThemeSunset,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to retro.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRetro
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
