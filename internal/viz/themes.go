package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI chrome. Footprint fills come
// from the age ramp and fade toward Background, so darker backgrounds keep
// the oldest buildings readable.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeHarbor = Theme{
		Name:       "harbor",
		Primary:    lipgloss.Color("#00ffff"), // Cyan
		Secondary:  lipgloss.Color("#5588bb"),
		Accent:     lipgloss.Color("#ffd700"), // Highlight outline
		Background: lipgloss.Color("#051020"),
		Text:       lipgloss.Color("#d8e8f8"),
		Muted:      lipgloss.Color("#44607c"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Primary:    lipgloss.Color("#ff8844"),
		Secondary:  lipgloss.Color("#cc5522"),
		Accent:     lipgloss.Color("#ffee88"),
		Background: lipgloss.Color("#1a0f08"),
		Text:       lipgloss.Color("#ffe8d8"),
		Muted:      lipgloss.Color("#885544"),
		Success:    lipgloss.Color("#88cc44"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff3322"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#dddddd"),
		Warning:    lipgloss.Color("#aaaaaa"),
		Error:      lipgloss.Color("#ffffff"),
	}

	ThemeSepia = Theme{
		Name:       "sepia",
		Primary:    lipgloss.Color("#c9a227"), // Old-map ink
		Secondary:  lipgloss.Color("#a5884f"),
		Accent:     lipgloss.Color("#e8d28a"),
		Background: lipgloss.Color("#241a0e"),
		Text:       lipgloss.Color("#f0e2c4"),
		Muted:      lipgloss.Color("#7a6a4a"),
		Success:    lipgloss.Color("#9db05a"),
		Warning:    lipgloss.Color("#d8a030"),
		Error:      lipgloss.Color("#c04030"),
	}

	ThemeAurora = Theme{
		Name:       "aurora",
		Primary:    lipgloss.Color("#66ffcc"),
		Secondary:  lipgloss.Color("#3388aa"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#0a1420"),
		Text:       lipgloss.Color("#e0fff0"),
		Muted:      lipgloss.Color("#446655"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}

	// Default theme
	CurrentTheme = ThemeHarbor

	// All available themes
	Themes = []Theme{
		ThemeHarbor,
		ThemeEmber,
		ThemeMono,
		ThemeSepia,
		ThemeAurora,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeHarbor
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
