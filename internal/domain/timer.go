package domain

import "fmt"

// Mode is the session kind the countdown is currently timing
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeFocus || m == ModeShortBreak
}

// Label returns the upper-case label shown under the clock
func (m Mode) Label() string {
	if m == ModeShortBreak {
		return "SHORT BREAK"
	}
	return "FOCUS"
}

// Title returns the mode name used in progress notifications
func (m Mode) Title() string {
	if m == ModeShortBreak {
		return "ShortBreak"
	}
	return "Focus"
}

// Next returns the mode that follows m in the focus/break cycle
func (m Mode) Next() Mode {
	if m == ModeFocus {
		return ModeShortBreak
	}
	return ModeFocus
}

// TimerState is the canonical countdown record replicated between windows.
//
// IsRunning and IsPaused are never both true; both false means stopped.
type TimerState struct {
	IsRunning          bool   `json:"isRunning"`
	IsPaused           bool   `json:"isPaused"`
	CurrentMode        Mode   `json:"currentMode"`
	TimeRemaining      int    `json:"timeRemaining"`
	TotalTime          int    `json:"totalTime"`
	CompletedPomodoros int    `json:"completedPomodoros"`
	CurrentTask        *int64 `json:"currentTask"`
	PipActive          bool   `json:"pipActive"`
}

// DefaultTimerState returns the state a window starts with before loading settings
func DefaultTimerState() TimerState {
	seconds := DefaultFocusMinutes * 60
	return TimerState{
		CurrentMode:   ModeFocus,
		TimeRemaining: seconds,
		TotalTime:     seconds,
	}
}

// Progress returns the elapsed fraction of the session in [0, 1]
func (s TimerState) Progress() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.TotalTime-s.TimeRemaining) / float64(s.TotalTime)
}

// Stopped reports whether the countdown is neither running nor paused
func (s TimerState) Stopped() bool {
	return !s.IsRunning && !s.IsPaused
}

// Validate checks the structural invariants of a snapshot
func (s TimerState) Validate() error {
	if !s.CurrentMode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSnapshot, s.CurrentMode)
	}
	if s.IsRunning && s.IsPaused {
		return fmt.Errorf("%w: running and paused at once", ErrInvalidSnapshot)
	}
	if s.TotalTime <= 0 {
		return fmt.Errorf("%w: total time %d", ErrInvalidSnapshot, s.TotalTime)
	}
	if s.TimeRemaining < 0 || s.TimeRemaining > s.TotalTime {
		return fmt.Errorf("%w: remaining %d of %d", ErrInvalidSnapshot, s.TimeRemaining, s.TotalTime)
	}
	if s.CompletedPomodoros < 0 {
		return fmt.Errorf("%w: negative completed count", ErrInvalidSnapshot)
	}
	return nil
}

// NotificationFlags guard the one-shot progress notifications of a session
type NotificationFlags struct {
	At50 bool
	At90 bool
}

// NotificationKind classifies a user-visible notification
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)
