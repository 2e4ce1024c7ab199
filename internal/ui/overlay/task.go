package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// TaskInput is the Value of the SelectionMsg a TaskPrompt emits
type TaskInput struct {
	Text     string
	Priority domain.Priority
}

// TaskPrompt asks for the text and priority of a new task
type TaskPrompt struct {
	text     textinput.Model
	priority domain.Priority
	styles   *Styles
	badge    func(domain.Priority) lipgloss.Style
}

// NewTaskPrompt creates an empty prompt with medium priority
func NewTaskPrompt(theme string) *TaskPrompt {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	return &TaskPrompt{
		text:     ti,
		priority: domain.PriorityMedium,
		styles:   New(theme),
		badge:    styles.New(theme).PriorityBadge,
	}
}

// Init starts the cursor blinking
func (p *TaskPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (p *TaskPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return p, closeOverlay
		case "tab":
			p.priority = p.priority.Cycle()
			return p, nil
		case "enter":
			text := strings.TrimSpace(p.text.Value())
			if text == "" {
				return p, closeOverlay
			}
			return p, selected(KeyTask, TaskInput{Text: text, Priority: p.priority})
		}
	}

	var cmd tea.Cmd
	p.text, cmd = p.text.Update(msg)
	return p, cmd
}

// View renders the prompt
func (p *TaskPrompt) View() string {
	var b strings.Builder
	b.WriteString(p.text.View())
	b.WriteString("\n\n")
	b.WriteString(p.styles.Label.Render("Priority: "))
	b.WriteString(p.badge(p.priority).Render(p.priority.Label()))
	b.WriteString("\n")
	b.WriteString(p.styles.Footer.Render("Tab: priority • Enter: add • Esc: cancel"))
	return b.String()
}

// Title returns the prompt title
func (p *TaskPrompt) Title() string {
	return "New Task"
}

// Size returns the prompt dimensions
func (p *TaskPrompt) Size() (width, height int) {
	return 50, 9
}

// Priority returns the currently chosen priority
func (p *TaskPrompt) Priority() domain.Priority {
	return p.priority
}
