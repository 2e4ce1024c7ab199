package appstate

import "github.com/riordanpawley/tomodoro/internal/domain"

// Effect is a side effect requested by a state transition. The window shell
// executes effects in order; the state never performs I/O itself.
type Effect interface {
	isEffect()
}

// Notify raises a transient user-visible notification
type Notify struct {
	Message string
	Kind    domain.NotificationKind
}

// ScheduleTick asks for Tick(Generation) one interval from now
type ScheduleTick struct {
	Generation uint64
}

// MediaOp is a command for the remote media player
type MediaOp string

const (
	MediaPlay     MediaOp = "play"
	MediaPause    MediaOp = "pause"
	MediaNext     MediaOp = "next"
	MediaPrevious MediaOp = "previous"
)

// MediaCommand relays a command to the remote media player
type MediaCommand struct {
	Op MediaOp
}

// Bell rings the completion bell
type Bell struct{}

// Persist writes the durable records (settings, stats, tasks, presets)
type Persist struct{}

// Sync writes the replicated records (timerState, mediaState)
type Sync struct{}

// ThemeChanged forwards a theme change to the companion window
type ThemeChanged struct {
	Theme string
}

func (Notify) isEffect()       {}
func (ScheduleTick) isEffect() {}
func (MediaCommand) isEffect() {}
func (Bell) isEffect()         {}
func (Persist) isEffect()      {}
func (Sync) isEffect()         {}
func (ThemeChanged) isEffect() {}

// Effects accumulates effects in order
type Effects []Effect

func (e *Effects) add(effects ...Effect) {
	*e = append(*e, effects...)
}

func (e *Effects) notify(kind domain.NotificationKind, message string) {
	e.add(Notify{Message: message, Kind: kind})
}
