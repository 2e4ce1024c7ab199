package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DurationInput is the Value of the SelectionMsg a DurationForm emits
type DurationInput struct {
	FocusMinutes      int
	ShortBreakMinutes int
}

// DurationForm edits the focus and short break lengths
type DurationForm struct {
	inputs [2]textinput.Model
	focus  int
	err    string
	styles *Styles
}

const (
	fieldFocus = iota
	fieldBreak
)

// NewDurationForm creates a form pre-filled with the current lengths
func NewDurationForm(focusMinutes, breakMinutes int, theme string) *DurationForm {
	f := &DurationForm{styles: New(theme)}
	for i, v := range []int{focusMinutes, breakMinutes} {
		ti := textinput.New()
		ti.CharLimit = 3
		ti.Width = 5
		ti.Validate = digitsOnly
		ti.SetValue(strconv.Itoa(v))
		f.inputs[i] = ti
	}
	f.inputs[fieldFocus].Focus()
	return f
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("minutes must be a number")
		}
	}
	return nil
}

// Init starts the cursor blinking
func (f *DurationForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *DurationForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		f.err = ""
		switch key.String() {
		case "esc":
			return f, closeOverlay
		case "tab", "shift+tab", "up", "down":
			f.inputs[f.focus].Blur()
			f.focus = 1 - f.focus
			return f, f.inputs[f.focus].Focus()
		case "enter":
			input, err := f.value()
			if err != nil {
				f.err = err.Error()
				return f, nil
			}
			return f, selected(KeyDuration, input)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *DurationForm) value() (DurationInput, error) {
	focus, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldFocus].Value()))
	if err != nil || focus <= 0 {
		return DurationInput{}, fmt.Errorf("focus length must be a positive number of minutes")
	}
	brk, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldBreak].Value()))
	if err != nil || brk <= 0 {
		return DurationInput{}, fmt.Errorf("break length must be a positive number of minutes")
	}
	return DurationInput{FocusMinutes: focus, ShortBreakMinutes: brk}, nil
}

// View renders the form
func (f *DurationForm) View() string {
	var b strings.Builder
	b.WriteString(f.styles.Label.Render("Focus (min):       "))
	b.WriteString(f.inputs[fieldFocus].View())
	b.WriteString("\n")
	b.WriteString(f.styles.Label.Render("Short break (min): "))
	b.WriteString(f.inputs[fieldBreak].View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(f.styles.Error.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(f.styles.Footer.Render("Tab: switch • Enter: save • Esc: cancel"))
	return b.String()
}

// Title returns the form title
func (f *DurationForm) Title() string {
	return "Timer Settings"
}

// Size returns the form dimensions
func (f *DurationForm) Size() (width, height int) {
	return 50, 9
}
