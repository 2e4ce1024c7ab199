package statusbar

import "github.com/riordanpawley/tomodoro/internal/types"

// CompanionHints are the keybindings of the companion window
const CompanionHints = "space: start/pause  r: reset  s: skip  m: music  n/N: track  q: close"

// GetHints returns the main window keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "space: start/pause  r: reset  s: skip  p: companion  a: add task  ?: help  q: quit"
	case types.ModeInput:
		return "Type text  Tab: priority  Enter: confirm  Esc: cancel"
	case types.ModeConfirm:
		return "y: confirm  n: cancel"
	default:
		return ""
	}
}
