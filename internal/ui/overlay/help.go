package overlay

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay displays the full keybinding reference of a window
type HelpOverlay struct {
	keys   help.KeyMap
	help   help.Model
	styles *Styles
}

// NewHelpOverlay renders the full help of keys
func NewHelpOverlay(keys help.KeyMap, theme string) *HelpOverlay {
	s := New(theme)
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "
	h.Styles.FullKey = s.MenuKey
	h.Styles.FullDesc = s.MenuItem
	h.Styles.FullSeparator = s.Separator
	return &HelpOverlay{keys: keys, help: h, styles: s}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update closes the overlay on esc, q or ?
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return h, closeOverlay
		}
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	return h.help.View(h.keys) + "\n" + h.styles.Footer.Render("Esc: close")
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	rows := 0
	for _, column := range h.keys.FullHelp() {
		rows = max(rows, len(column))
	}
	width = max(8, lipgloss.Width(h.help.View(h.keys)))
	return min(width+6, 100), rows + 6
}
