package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOverlay answers enter with its value and esc with a close
type stubOverlay struct {
	title string
	value string
}

func (s stubOverlay) Init() tea.Cmd { return nil }

func (s stubOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return s, selected("stub", s.value)
		case "esc":
			return s, closeOverlay
		}
	}
	return s, nil
}

func (s stubOverlay) View() string              { return s.title }
func (s stubOverlay) Title() string             { return s.title }
func (s stubOverlay) Size() (width, height int) { return 30, 5 }

func TestStack_PushPop(t *testing.T) {
	stack := NewStack()
	assert.True(t, stack.IsEmpty())
	assert.Nil(t, stack.Current())
	assert.Nil(t, stack.Pop())

	stack.Push(stubOverlay{title: "Tasks"})
	stack.Push(stubOverlay{title: "Delete"})
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "Delete", stack.Current().Title())

	assert.Equal(t, "Delete", stack.Pop().Title())
	assert.Equal(t, "Tasks", stack.Current().Title())

	stack.Clear()
	assert.True(t, stack.IsEmpty())
}

func TestStack_UpdateForwardsToTop(t *testing.T) {
	stack := NewStack()
	assert.Nil(t, stack.Update(tea.KeyMsg{Type: tea.KeyEnter}))

	stack.Push(stubOverlay{title: "Import", value: "/tmp/data.json"})
	assert.Nil(t, stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))

	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectionMsg{Key: "stub", Value: "/tmp/data.json"}, cmd())
	assert.Equal(t, 1, stack.Len(), "the answer itself pops the dialog")
}

func TestStack_ClosesOnAnswer(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"close", CloseOverlayMsg{}},
		{"selection", SelectionMsg{Key: KeyConfirm, Value: ConfirmResult{Confirmed: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := NewStack()
			stack.Push(stubOverlay{title: "Help"})
			stack.Push(stubOverlay{title: "Confirm"})

			assert.Nil(t, stack.Update(tt.msg))
			assert.Equal(t, "Help", stack.Current().Title())
		})
	}
}
