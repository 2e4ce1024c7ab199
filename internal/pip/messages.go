package pip

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/store"
)

type storeChangeMsg struct {
	change store.Change
}

// linkMsg carries one opener message; ok is false once the link closed
type linkMsg struct {
	message companion.Message
	ok      bool
}

type sendFailedMsg struct {
	action companion.Action
	err    error
}

type toastExpiryMsg struct{}

func waitForChange(changes <-chan store.Change) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return storeChangeMsg{change: change}
	}
}

func waitForMessage(messages <-chan companion.Message) tea.Cmd {
	return func() tea.Msg {
		message, ok := <-messages
		return linkMsg{message: message, ok: ok}
	}
}

func expireToastsAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiryMsg{} })
}
