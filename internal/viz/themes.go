package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors matrix cells and check results.
type Theme struct {
	Name    string
	Nonzero lipgloss.Color
	Zero    lipgloss.Color
	Block   lipgloss.Color
	Pass    lipgloss.Color
	Fail    lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Nonzero: lipgloss.Color("#ff00ff"),
		Zero:    lipgloss.Color("#333333"),
		Block:   lipgloss.Color("#00ffff"),
		Pass:    lipgloss.Color("#00ff00"),
		Fail:    lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Nonzero: lipgloss.Color("#00ff00"),
		Zero:    lipgloss.Color("#005500"),
		Block:   lipgloss.Color("#88ff88"),
		Pass:    lipgloss.Color("#88ff88"),
		Fail:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Nonzero: lipgloss.Color("#ffffff"),
		Zero:    lipgloss.Color("#444444"),
		Block:   lipgloss.Color("#0088ff"),
		Pass:    lipgloss.Color("#00ff00"),
		Fail:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Nonzero: lipgloss.Color("#00a8cc"),
		Zero:    lipgloss.Color("#1a3a55"),
		Block:   lipgloss.Color("#ffd700"),
		Pass:    lipgloss.Color("#00ff88"),
		Fail:    lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
