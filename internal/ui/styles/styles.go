package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/ui/render"
)

// Styles holds all the UI styles for one theme
type Styles struct {
	Theme   string
	Palette Palette

	// Layout
	App        lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Muted      lipgloss.Style
	Banner     lipgloss.Style

	// Tasks
	Task          lipgloss.Style
	TaskSelected  lipgloss.Style
	TaskDone      lipgloss.Style
	TaskCurrent   lipgloss.Style
	PriorityBadge func(priority domain.Priority) lipgloss.Style

	// Stats
	StatValue lipgloss.Style
	StatLabel lipgloss.Style

	// Media
	TrackName   lipgloss.Style
	TrackArtist lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates the styles of a theme
func New(theme string) *Styles {
	palette := PaletteFor(theme)
	if _, ok := domain.ThemeColors[theme]; !ok {
		theme = domain.DefaultTheme
	}

	return &Styles{
		Theme:   theme,
		Palette: palette,

		App: lipgloss.NewStyle().
			Background(palette.Background).
			Foreground(palette.Foreground),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Bold(true).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(palette.Muted),

		Banner: lipgloss.NewStyle().
			Foreground(Mauve).
			Italic(true),

		Task: lipgloss.NewStyle().
			Foreground(palette.Foreground),

		TaskSelected: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(palette.Muted).
			Strikethrough(true),

		TaskCurrent: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		PriorityBadge: func(priority domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[priority]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		StatValue: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(palette.Muted),

		TrackName: lipgloss.NewStyle().
			Foreground(palette.Foreground).
			Bold(true),

		TrackArtist: lipgloss.NewStyle().
			Foreground(palette.Muted),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// Dial returns the dial colors for a timer mode
func (s *Styles) Dial(mode domain.Mode) render.DialStyle {
	return render.DialStyle{
		Accent:     ModeAccent(mode),
		Foreground: s.Palette.Foreground,
		Muted:      s.Palette.Muted,
		Track:      Surface1,
	}
}
