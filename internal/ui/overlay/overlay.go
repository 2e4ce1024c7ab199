// Package overlay provides the modal dialogs drawn over the timer view.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a dialog is answered. Key names the dialog,
// Value carries its result.
type SelectionMsg struct {
	Key   string
	Value any
}

// Selection keys emitted by the dialogs in this package
const (
	KeyConfirm  = "confirm"
	KeyTask     = "task"
	KeyDuration = "duration"
)

func selected(key string, value any) tea.Cmd {
	return func() tea.Msg { return SelectionMsg{Key: key, Value: value} }
}

func closeOverlay() tea.Msg { return CloseOverlayMsg{} }
