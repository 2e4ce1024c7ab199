package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PathPrompt asks for a file path, e.g. the archive to import
type PathPrompt struct {
	key    string
	title  string
	input  textinput.Model
	styles *Styles
}

// NewPathPrompt creates a prompt pre-filled with initial. Its SelectionMsg
// carries key and the entered path as a string.
func NewPathPrompt(key, title, initial, theme string) *PathPrompt {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.json"
	ti.CharLimit = 1024
	ti.Width = 44
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return &PathPrompt{
		key:    key,
		title:  title,
		input:  ti,
		styles: New(theme),
	}
}

// Init starts the cursor blinking
func (p *PathPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (p *PathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return p, closeOverlay
		case "enter":
			path := strings.TrimSpace(p.input.Value())
			if path == "" {
				return p, closeOverlay
			}
			return p, selected(p.key, path)
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt
func (p *PathPrompt) View() string {
	return p.input.View() + "\n" + p.styles.Footer.Render("Enter: confirm • Esc: cancel")
}

// Title returns the prompt title
func (p *PathPrompt) Title() string {
	return p.title
}

// Size returns the prompt dimensions
func (p *PathPrompt) Size() (width, height int) {
	return 54, 7
}
