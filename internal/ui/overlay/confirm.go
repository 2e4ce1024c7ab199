package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog is a Yes/No question about a single subject
type ConfirmDialog struct {
	title    string
	message  string
	subject  any
	styles   *Styles
	selected bool // true = Yes
}

// ConfirmResult is the Value of the SelectionMsg a ConfirmDialog emits
type ConfirmResult struct {
	Confirmed bool
	// Subject is whatever the dialog was opened for, e.g. a task id
	Subject any
}

// NewConfirmDialog creates a dialog that defaults to No
func NewConfirmDialog(title, message string, subject any, theme string) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		subject: subject,
		styles:  New(theme),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h":
		c.selected = true
	case "right", "l":
		c.selected = false
	case "tab":
		c.selected = !c.selected
	}
	return c, nil
}

func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	return selected(KeyConfirm, ConfirmResult{Confirmed: yes, Subject: c.subject})
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}
	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	return 50, strings.Count(c.message, "\n") + 7
}
