package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathPrompt(t *testing.T) {
	prompt := NewPathPrompt("import", "Import Data", "/home/me/tomodoro_data.json", "default")
	assert.Equal(t, "Import Data", prompt.Title())
	assert.Contains(t, prompt.View(), "tomodoro_data.json")

	_, cmd := prompt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectionMsg{Key: "import", Value: "/home/me/tomodoro_data.json"}, cmd())
}

func TestPathPrompt_EmptyCloses(t *testing.T) {
	prompt := NewPathPrompt("import", "Import Data", "", "default")

	_, cmd := prompt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())

	_, cmd = prompt.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())
}
