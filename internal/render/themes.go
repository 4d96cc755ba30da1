package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette used by the terminal renderer
type Theme struct {
	Name  string
	Drop  lipgloss.Color
	Pulse lipgloss.Color
	Muted lipgloss.Color
	Flash lipgloss.Color
	Heart lipgloss.Color
	Text  lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:  "night",
		Drop:  lipgloss.Color("#7fb2ff"),
		Pulse: lipgloss.Color("#c4dcff"),
		Muted: lipgloss.Color("#3d5a80"),
		Flash: lipgloss.Color("#ffffff"),
		Heart: lipgloss.Color("#ff7a93"),
		Text:  lipgloss.Color("#d0d8e8"),
	}

	ThemeStorm = Theme{
		Name:  "storm",
		Drop:  lipgloss.Color("#9aa5b1"),
		Pulse: lipgloss.Color("#e4e7eb"),
		Muted: lipgloss.Color("#52606d"),
		Flash: lipgloss.Color("#fff3b0"),
		Heart: lipgloss.Color("#f9703e"),
		Text:  lipgloss.Color("#f5f7fa"),
	}

	ThemeDusk = Theme{
		Name:  "dusk",
		Drop:  lipgloss.Color("#b392f0"),
		Pulse: lipgloss.Color("#e2d4ff"),
		Muted: lipgloss.Color("#5a4a78"),
		Flash: lipgloss.Color("#ffe6a7"),
		Heart: lipgloss.Color("#ff6b9a"),
		Text:  lipgloss.Color("#ece4ff"),
	}

	ThemeMono = Theme{
		Name:  "mono",
		Drop:  lipgloss.Color("250"),
		Pulse: lipgloss.Color("255"),
		Muted: lipgloss.Color("240"),
		Flash: lipgloss.Color("231"),
		Heart: lipgloss.Color("252"),
		Text:  lipgloss.Color("252"),
	}

	Themes = []Theme{
		ThemeNight,
		ThemeStorm,
		ThemeDusk,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
