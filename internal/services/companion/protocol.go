// Package companion carries the messages exchanged between the main window
// and its companion window. The opener listens on a Unix socket, launches
// the companion and exchanges a stream of CBOR messages with it over a
// single connection.
package companion

import (
	"fmt"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Action names a message. The set is closed; anything else is rejected.
type Action string

// Sent by the companion to its opener
const (
	ActionToggleTimer    Action = "toggleTimer"
	ActionResetTimer     Action = "resetTimer"
	ActionSkipTimer      Action = "skipTimer"
	ActionToggleMedia    Action = "toggleMedia"
	ActionNextTrack      Action = "nextTrack"
	ActionPrevTrack      Action = "prevTrack"
	ActionCloseCompanion Action = "closeCompanion"
)

// Sent by the opener to its companion
const (
	ActionInit             Action = "init"
	ActionShowNotification Action = "showNotification"
	ActionUpdateTheme      Action = "updateTheme"
)

// FromCompanion reports whether a is a command the companion may send
func (a Action) FromCompanion() bool {
	switch a {
	case ActionToggleTimer, ActionResetTimer, ActionSkipTimer,
		ActionToggleMedia, ActionNextTrack, ActionPrevTrack, ActionCloseCompanion:
		return true
	}
	return false
}

// FromOpener reports whether a is a message the opener may send
func (a Action) FromOpener() bool {
	switch a {
	case ActionInit, ActionShowNotification, ActionUpdateTheme:
		return true
	}
	return false
}

// Bootstrap is the snapshot a freshly launched companion renders from
type Bootstrap struct {
	Timer  domain.TimerState `cbor:"timer"`
	Media  domain.MediaState `cbor:"media"`
	Theme  string            `cbor:"theme"`
	Themes map[string]string `cbor:"themes"`
}

// Message is one frame on the wire
type Message struct {
	Action    Action                  `cbor:"action"`
	Message   string                  `cbor:"message,omitempty"`
	Kind      domain.NotificationKind `cbor:"kind,omitempty"`
	Theme     string                  `cbor:"theme,omitempty"`
	Bootstrap *Bootstrap              `cbor:"bootstrap,omitempty"`
}

// Validate checks that the message carries what its action needs
func (m Message) Validate() error {
	switch m.Action {
	case ActionInit:
		if m.Bootstrap == nil {
			return fmt.Errorf("%s: missing bootstrap", m.Action)
		}
	case ActionShowNotification:
		if m.Message == "" {
			return fmt.Errorf("%s: missing message", m.Action)
		}
	case ActionUpdateTheme:
		if m.Theme == "" {
			return fmt.Errorf("%s: missing theme", m.Action)
		}
	default:
		if !m.Action.FromCompanion() {
			return fmt.Errorf("unknown action %q", m.Action)
		}
	}
	return nil
}
