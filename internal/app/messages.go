package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/store"
)

// tickMsg is one heartbeat of the countdown started with generation
type tickMsg struct {
	generation uint64
}

// storeChangeMsg carries a record written by the other window
type storeChangeMsg struct {
	change store.Change
}

type companionEventMsg struct {
	event companion.Event
}

type companionOpenedMsg struct {
	alreadyOpen bool
	err         error
}

type exportedMsg struct {
	path string
	err  error
}

type importedMsg struct {
	records domain.Records
	err     error
}

type toastExpiryMsg struct{}

type hidePlayerMsg struct{}

type dayCheckMsg struct{}

// dayCheckInterval is how often the calendar day is re-checked
const dayCheckInterval = time.Minute

func tickAfter(d time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

// waitForChange blocks until the store publishes a change. The command
// returns nil once the subscription is closed, ending the loop.
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

func waitForEvent(events <-chan companion.Event) tea.Cmd {
	return func() tea.Msg {
		return companionEventMsg{event: <-events}
	}
}

func expireToastsAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiryMsg{} })
}

func checkDayAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return dayCheckMsg{} })
}
