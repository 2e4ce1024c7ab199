package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

func TestStatusBar_RenderNormalMode(t *testing.T) {
	sb := New(types.ModeNormal, 120, styles.New(domain.DefaultTheme))

	result := sb.Render()

	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Expected status bar to contain 'NORMAL', got: %s", result)
	}
	if !strings.Contains(result, "space: start/pause") {
		t.Errorf("Expected status bar to contain timer hints, got: %s", result)
	}
	if !strings.Contains(result, "p: companion") {
		t.Errorf("Expected status bar to contain companion hint, got: %s", result)
	}
}

func TestStatusBar_RenderInputMode(t *testing.T) {
	sb := New(types.ModeInput, 80, styles.New(domain.DefaultTheme))

	result := sb.Render()

	if !strings.Contains(result, "INPUT") {
		t.Errorf("Expected status bar to contain 'INPUT', got: %s", result)
	}
	if !strings.Contains(result, "Enter: confirm") {
		t.Errorf("Expected status bar to contain confirm hint, got: %s", result)
	}
}

func TestStatusBar_CompanionHintsAndInfo(t *testing.T) {
	width := 100
	sb := New(types.ModeNormal, width, styles.New("light")).
		WithHints(CompanionHints).
		WithInfo("🍅 3")

	result := sb.Render()

	if !strings.Contains(result, "q: close") {
		t.Errorf("Expected companion hints, got: %s", result)
	}
	if !strings.Contains(result, "🍅 3") {
		t.Errorf("Expected info text, got: %s", result)
	}
	if got := lipgloss.Width(result); got != width {
		t.Errorf("Expected status bar to fill %d columns, got %d", width, got)
	}
}

func TestGetHints_AllModes(t *testing.T) {
	tests := []struct {
		mode     types.Mode
		expected string
	}{
		{types.ModeNormal, "space: start/pause  r: reset  s: skip  p: companion  a: add task  ?: help  q: quit"},
		{types.ModeInput, "Type text  Tab: priority  Enter: confirm  Esc: cancel"},
		{types.ModeConfirm, "y: confirm  n: cancel"},
		{types.Mode(99), ""},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			result := GetHints(tt.mode)
			if result != tt.expected {
				t.Errorf("GetHints(%v) = %q, want %q", tt.mode, result, tt.expected)
			}
		})
	}
}
