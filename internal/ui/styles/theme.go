package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Catppuccin Macchiato palette
var (
	// Base colors
	Base     = lipgloss.Color("#24273a")
	Mantle   = lipgloss.Color("#1e2030")
	Surface0 = lipgloss.Color("#363a4f")
	Surface1 = lipgloss.Color("#494d64")
	Surface2 = lipgloss.Color("#5b6078")
	Overlay0 = lipgloss.Color("#6e738d")
	Overlay1 = lipgloss.Color("#8087a2")
	Subtext0 = lipgloss.Color("#a5adcb")
	Text     = lipgloss.Color("#cad3f5")

	// Accent colors
	Mauve    = lipgloss.Color("#c6a0f6")
	Red      = lipgloss.Color("#ed8796")
	Peach    = lipgloss.Color("#f5a97f")
	Yellow   = lipgloss.Color("#eed49f")
	Green    = lipgloss.Color("#a6da95")
	Teal     = lipgloss.Color("#8bd5ca")
	Blue     = lipgloss.Color("#8aadf4")
	Lavender = lipgloss.Color("#b7bdf8")
)

// PriorityColors maps task priorities to colors
var PriorityColors = map[domain.Priority]lipgloss.Color{
	domain.PriorityHigh:   Red,
	domain.PriorityMedium: Yellow,
	domain.PriorityLow:    Green,
}

// Palette is the set of colors derived from a user theme
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
}

// PaletteFor returns the palette of a theme. Unknown themes use the default.
// The light theme is the only one with dark text.
func PaletteFor(theme string) Palette {
	background, ok := domain.ThemeColors[theme]
	if !ok {
		theme = domain.DefaultTheme
		background = domain.ThemeColors[theme]
	}
	if theme == "light" {
		return Palette{
			Background: lipgloss.Color(background),
			Foreground: lipgloss.Color("#333333"),
			Muted:      lipgloss.Color("#666666"),
		}
	}
	return Palette{
		Background: lipgloss.Color(background),
		Foreground: lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#a0a0a0"),
	}
}

// ModeAccent returns the accent color of a timer mode
func ModeAccent(mode domain.Mode) lipgloss.Color {
	if c, ok := domain.ModeColors[mode]; ok {
		return lipgloss.Color(c)
	}
	return Blue
}
