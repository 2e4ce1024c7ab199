package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

func TestTaskPrompt_Submit(t *testing.T) {
	prompt := NewTaskPrompt("default")
	assert.Equal(t, domain.PriorityMedium, prompt.Priority())

	prompt.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  Write report ")})
	prompt.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.PriorityMedium.Cycle(), prompt.Priority())

	_, cmd := prompt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectionMsg{
		Key:   KeyTask,
		Value: TaskInput{Text: "Write report", Priority: domain.PriorityMedium.Cycle()},
	}, cmd())
}

func TestTaskPrompt_BlankCloses(t *testing.T) {
	prompt := NewTaskPrompt("default")
	prompt.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("   ")})

	_, cmd := prompt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())
}

func TestTaskPrompt_EscCloses(t *testing.T) {
	prompt := NewTaskPrompt("default")
	_, cmd := prompt.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())
}

func TestTaskPrompt_View(t *testing.T) {
	prompt := NewTaskPrompt("light")
	view := prompt.View()

	assert.Contains(t, view, "Priority:")
	assert.Contains(t, view, domain.PriorityMedium.Label())
	assert.Equal(t, "New Task", prompt.Title())
}
