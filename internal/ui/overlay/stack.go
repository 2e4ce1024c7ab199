package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open dialogs; only the top one receives input
type Stack struct {
	overlays []Overlay
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top of the stack
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop removes and returns the top overlay, or nil
func (s *Stack) Pop() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	return top
}

// Current returns the top overlay without removing it, or nil
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// IsEmpty reports whether no overlay is open
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.overlays)
}

// Clear closes every overlay
func (s *Stack) Clear() {
	s.overlays = nil
}

// Update forwards msg to the top overlay. CloseOverlayMsg and SelectionMsg
// pop it; a SelectionMsg still reaches the caller through the returned value.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	if s.IsEmpty() {
		return nil
	}

	switch msg.(type) {
	case CloseOverlayMsg, SelectionMsg:
		s.Pop()
		return nil
	}

	next, cmd := s.Current().Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}
