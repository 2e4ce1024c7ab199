// Package render derives everything a window draws from a TimerState.
// Both windows render through it so they cannot disagree on formatting.
package render

import (
	"fmt"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

const (
	IconPlay  = "▶"
	IconPause = "⏸"
)

// Frame is the render-ready projection of a TimerState
type Frame struct {
	Clock    string
	Angle    float64 // degrees of the progress ring, 0..360
	Ratio    float64 // elapsed fraction, 0..1
	PlayIcon string
	Label    string
	Mode     domain.Mode
	Running  bool
	Paused   bool
}

// Project maps a timer snapshot to a frame
func Project(s domain.TimerState) Frame {
	ratio := s.Progress()
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	icon := IconPlay
	if s.IsRunning {
		icon = IconPause
	}

	return Frame{
		Clock:    FormatClock(s.TimeRemaining),
		Angle:    ratio * 360,
		Ratio:    ratio,
		PlayIcon: icon,
		Label:    s.CurrentMode.Label(),
		Mode:     s.CurrentMode,
		Running:  s.IsRunning,
		Paused:   s.IsPaused,
	}
}

// FormatClock renders seconds as zero-padded MM:SS. Minutes are not capped.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Title is the one-line summary used for window titles
func Title(f Frame) string {
	return fmt.Sprintf("%s %s %s", f.PlayIcon, f.Clock, f.Label)
}
