package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// MenuHeader is the style for help section headers
	MenuHeader lipgloss.Style
	Separator  lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// Label names an input field
	Label lipgloss.Style
	// Error shows an input validation message
	Error lipgloss.Style
}

// New creates overlay styles for the given theme
func New(theme string) *Styles {
	palette := styles.PaletteFor(theme)
	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Background(palette.Background).
			Foreground(palette.Foreground).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(palette.Foreground),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(palette.Muted).
			MarginTop(1),

		Label: lipgloss.NewStyle().
			Foreground(palette.Muted),

		Error: lipgloss.NewStyle().
			Foreground(styles.Red),
	}
}
