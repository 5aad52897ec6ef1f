package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the live view. Marker is replaced by
// the configured mass colour when one is set.
type Theme struct {
	Name   string
	Axis   [3]lipgloss.Color
	Marker lipgloss.Color
	Trail  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Active lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Axis:   [3]lipgloss.Color{"#ff5f5f", "#5fff87", "#5fafff"},
		Marker: lipgloss.Color("#fe98a0"),
		Trail:  lipgloss.Color("#666688"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("242"),
		Active: lipgloss.Color("205"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Axis:   [3]lipgloss.Color{"#00ff00", "#00cc00", "#009900"},
		Marker: lipgloss.Color("#88ff88"),
		Trail:  lipgloss.Color("#005500"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#007700"),
		Active: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Axis:   [3]lipgloss.Color{"#ffffff", "#cccccc", "#999999"},
		Marker: lipgloss.Color("#ffffff"),
		Trail:  lipgloss.Color("#555555"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Active: lipgloss.Color("#0088ff"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeMinimal}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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
