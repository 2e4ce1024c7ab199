package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of a window
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles
	hints  string
	info   string
}

// New creates a new StatusBar with the main window hints for mode
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
		hints:  GetHints(mode),
	}
}

// WithHints replaces the keybinding hints
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// WithInfo sets right-aligned status text
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	content := modeBadge
	if sb.hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(sb.hints))
	}

	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		// StatusBar pads one column each side
		gap := sb.width - 2 - lipgloss.Width(content) - lipgloss.Width(info)
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), info)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
