// Package timer implements the countdown state machine shared by both windows.
//
// The machine never schedules anything itself. Start hands out a tick
// generation; the caller delivers Tick(generation) once per interval and the
// machine rejects every generation but the current one, so at most one
// ticker can ever decrement the clock.
package timer

import "github.com/riordanpawley/tomodoro/internal/domain"

// Threshold identifies a one-shot progress notification
type Threshold int

const (
	Halfway      Threshold = 50
	NearComplete Threshold = 90
)

// TickResult describes what an accepted tick changed
type TickResult struct {
	Accepted bool
	Crossed  []Threshold
	Finished bool
}

// tickHandle is the single owned handle for the recurring tick
type tickHandle struct {
	generation uint64
	active     bool
}

// Machine owns the canonical TimerState and its tick handle
type Machine struct {
	state domain.TimerState
	flags domain.NotificationFlags
	tick  tickHandle
}

// New creates a stopped machine in focus mode with the given session length
func New(focusSeconds int) *Machine {
	m := &Machine{state: domain.DefaultTimerState()}
	m.retime(domain.ModeFocus, focusSeconds)
	return m
}

// State returns a copy of the canonical state
func (m *Machine) State() domain.TimerState {
	return m.state
}

// Flags returns the notification guards of the current session
func (m *Machine) Flags() domain.NotificationFlags {
	return m.flags
}

// Ticking reports whether a tick generation is live
func (m *Machine) Ticking() bool {
	return m.tick.active
}

// Generation returns the live tick generation (0 if none was ever issued)
func (m *Machine) Generation() uint64 {
	return m.tick.generation
}

// SetMode stops the countdown and loads a fresh session of mode
func (m *Machine) SetMode(mode domain.Mode, seconds int) {
	m.cancelTick()
	m.retime(mode, seconds)
	m.flags = domain.NotificationFlags{}
	m.state.IsRunning = false
	m.state.IsPaused = false
}

// Start moves to Running and returns the generation the caller must tick with
func (m *Machine) Start() uint64 {
	m.state.IsRunning = true
	m.state.IsPaused = false
	return m.restartTick()
}

// Pause moves to Paused and cancels the tick
func (m *Machine) Pause() {
	m.cancelTick()
	m.state.IsRunning = false
	m.state.IsPaused = true
}

// Reset stops the countdown and restores the full session length
func (m *Machine) Reset(seconds int) {
	m.cancelTick()
	m.state.IsRunning = false
	m.state.IsPaused = false
	m.retime(m.state.CurrentMode, seconds)
	m.flags = domain.NotificationFlags{}
}

// Tick advances the countdown by one second if generation is live
func (m *Machine) Tick(generation uint64) TickResult {
	if !m.tick.active || generation != m.tick.generation || !m.state.IsRunning {
		return TickResult{}
	}

	if m.state.TimeRemaining > 0 {
		m.state.TimeRemaining--
	}
	result := TickResult{Accepted: true}

	if m.reached(Halfway) && !m.flags.At50 {
		m.flags.At50 = true
		result.Crossed = append(result.Crossed, Halfway)
	}
	if m.reached(NearComplete) && !m.flags.At90 {
		m.flags.At90 = true
		result.Crossed = append(result.Crossed, NearComplete)
	}

	result.Finished = m.state.TimeRemaining <= 0
	return result
}

// Finish ends the current session without choosing what comes next
func (m *Machine) Finish() {
	m.cancelTick()
	m.state.IsRunning = false
	m.flags = domain.NotificationFlags{}
}

// Retime replaces the session length without touching the run state.
// A live tick keeps running against the new length.
func (m *Machine) Retime(mode domain.Mode, seconds int) {
	m.retime(mode, seconds)
}

// Restore overwrites the state with a snapshot written elsewhere. A live
// tick survives only if the snapshot says the countdown is running.
func (m *Machine) Restore(s domain.TimerState) {
	m.state = s
	if !s.IsRunning {
		m.cancelTick()
	}
}

// SetCompanionActive records whether the companion window is open
func (m *Machine) SetCompanionActive(active bool) {
	m.state.PipActive = active
}

// SetCurrentTask binds (or with nil, unbinds) the task credited on completion
func (m *Machine) SetCurrentTask(id *int64) {
	if id == nil {
		m.state.CurrentTask = nil
		return
	}
	bound := *id
	m.state.CurrentTask = &bound
}

// CountCompletion bumps the state's own completed counter
func (m *Machine) CountCompletion() {
	m.state.CompletedPomodoros++
}

// reached compares elapsed/total against a percentage in integers
func (m *Machine) reached(threshold Threshold) bool {
	elapsed := m.state.TotalTime - m.state.TimeRemaining
	return elapsed*100 >= int(threshold)*m.state.TotalTime
}

func (m *Machine) retime(mode domain.Mode, seconds int) {
	if seconds <= 0 {
		seconds = domain.DefaultFocusMinutes * 60
	}
	m.state.CurrentMode = mode
	m.state.TimeRemaining = seconds
	m.state.TotalTime = seconds
}

// restartTick is the only place a generation is issued; it always
// invalidates the previous one first.
func (m *Machine) restartTick() uint64 {
	m.cancelTick()
	m.tick.generation++
	m.tick.active = true
	return m.tick.generation
}

func (m *Machine) cancelTick() {
	m.tick.active = false
}
