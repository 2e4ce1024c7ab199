// Package appstate holds the application state owned by one window and the
// operations users trigger on it. Every operation returns the effects the
// window must carry out: persisting, replicating to the other window,
// notifying, scheduling the next tick and driving the media player.
package appstate

import (
	"fmt"
	"strings"
	"time"

	"github.com/riordanpawley/tomodoro/internal/core/timer"
	"github.com/riordanpawley/tomodoro/internal/domain"
)

// State is the explicit application state of the main window
type State struct {
	machine  *timer.Machine
	settings domain.Settings
	stats    domain.Stats
	tasks    []domain.Task
	presets  []domain.Preset
	media    domain.MediaState
	now      func() time.Time
}

// New creates a state with default settings. now may be nil.
func New(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	settings := domain.DefaultSettings()
	return &State{
		machine:  timer.New(settings.DurationFor(domain.ModeFocus)),
		settings: settings,
		stats:    domain.NewStats(now()),
		tasks:    []domain.Task{},
		presets:  []domain.Preset{},
		media:    domain.DefaultMediaState(),
		now:      now,
	}
}

// Timer returns the canonical timer snapshot
func (s *State) Timer() domain.TimerState { return s.machine.State() }

// Media returns the media player state
func (s *State) Media() domain.MediaState { return s.media }

// Settings returns the current settings
func (s *State) Settings() domain.Settings { return s.settings }

// Stats returns the aggregate counters
func (s *State) Stats() domain.Stats { return s.stats }

// Ticking reports whether a tick generation is live
func (s *State) Ticking() bool { return s.machine.Ticking() }

// Tasks returns a copy of the priority-sorted task list
func (s *State) Tasks() []domain.Task {
	return append([]domain.Task(nil), s.tasks...)
}

// Presets returns a copy of the saved presets
func (s *State) Presets() []domain.Preset {
	return append([]domain.Preset(nil), s.presets...)
}

// Records returns the durable records for persistence or export
func (s *State) Records() domain.Records {
	return domain.Records{
		Settings: s.settings,
		Stats:    s.stats,
		Tasks:    s.Tasks(),
		Presets:  s.Presets(),
	}
}

// Load replaces the durable records with ones read at startup, applies the
// daily reset and re-times the session to the focus duration.
func (s *State) Load(records domain.Records) Effects {
	s.replaceRecords(records)
	s.machine.Retime(domain.ModeFocus, s.settings.DurationFor(domain.ModeFocus))

	var effects Effects
	if s.stats.ResetIfNewDay(domain.DateKey(s.now())) {
		effects.add(Persist{})
	}
	return effects
}

// CheckDailyReset zeroes today's count when the calendar day changed
func (s *State) CheckDailyReset() Effects {
	var effects Effects
	if s.stats.ResetIfNewDay(domain.DateKey(s.now())) {
		effects.add(Persist{})
	}
	return effects
}

// SetMode switches to mode with a fresh, stopped session
func (s *State) SetMode(mode domain.Mode) Effects {
	var effects Effects
	s.setMode(&effects, mode)
	effects.add(Persist{}, Sync{})
	return effects
}

// Toggle starts a stopped or paused countdown, or pauses a running one
func (s *State) Toggle() Effects {
	var effects Effects
	if s.machine.State().IsRunning {
		s.pause(&effects)
	} else {
		s.start(&effects)
	}
	effects.add(Sync{})
	return effects
}

// Start begins (or resumes) the countdown
func (s *State) Start() Effects {
	var effects Effects
	s.start(&effects)
	effects.add(Sync{})
	return effects
}

// Pause stops the countdown, keeping the remaining time
func (s *State) Pause() Effects {
	var effects Effects
	s.pause(&effects)
	effects.add(Sync{})
	return effects
}

// Reset restores the full duration of the current mode
func (s *State) Reset() Effects {
	var effects Effects
	mode := s.machine.State().CurrentMode
	s.machine.Reset(s.settings.DurationFor(mode))
	if mode == domain.ModeFocus && s.media.IsPlaying {
		effects.add(MediaCommand{Op: MediaPause})
	}
	effects.notify(domain.NotifyInfo, "Timer reset")
	effects.add(Sync{})
	return effects
}

// Tick delivers one heartbeat for generation
func (s *State) Tick(generation uint64) Effects {
	result := s.machine.Tick(generation)
	if !result.Accepted {
		return nil
	}

	var effects Effects
	mode := s.machine.State().CurrentMode
	for _, threshold := range result.Crossed {
		effects.notify(domain.NotifyInfo, fmt.Sprintf("%s Timer: %d%% Complete", mode.Title(), int(threshold)))
	}

	if result.Finished {
		s.complete(&effects)
	} else {
		effects.add(ScheduleTick{Generation: generation})
	}
	effects.add(Sync{})
	return effects
}

// Complete ends the current session and chains straight into the next one
func (s *State) Complete() Effects {
	var effects Effects
	s.complete(&effects)
	effects.add(Sync{})
	return effects
}

// Skip completes the current session regardless of the remaining time
func (s *State) Skip() Effects {
	return s.Complete()
}

// UpdateSettings changes both durations. The current session is re-timed
// immediately, even when it is mid-countdown.
func (s *State) UpdateSettings(focusMinutes, breakMinutes int) Effects {
	s.settings.FocusDuration = focusMinutes
	s.settings.ShortBreakDuration = breakMinutes
	s.settings = s.settings.Normalize()

	mode := s.machine.State().CurrentMode
	s.machine.Retime(mode, s.settings.DurationFor(mode))
	return Effects{Persist{}, Sync{}}
}

// SetTheme changes the colour theme
func (s *State) SetTheme(theme string) Effects {
	s.settings.Theme = theme
	s.settings = s.settings.Normalize()
	return Effects{Persist{}, ThemeChanged{Theme: s.settings.Theme}}
}

// AddTask appends a task; blank text is ignored
func (s *State) AddTask(text string, priority domain.Priority) Effects {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if priority.Rank() > domain.PriorityLow.Rank() {
		priority = domain.PriorityMedium
	}
	s.tasks = append(s.tasks, domain.Task{
		ID:       domain.NewTaskID(s.now(), s.tasks),
		Text:     text,
		Priority: priority,
	})
	domain.SortTasks(s.tasks)
	return Effects{Persist{}}
}

// DeleteTask removes a task, clearing the current-task binding if it pointed there
func (s *State) DeleteTask(id int64) Effects {
	index := domain.FindTask(s.tasks, id)
	if index < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)

	effects := Effects{Persist{}}
	if current := s.machine.State().CurrentTask; current != nil && *current == id {
		s.machine.SetCurrentTask(nil)
		effects.add(Sync{})
	}
	return effects
}

// BindTask makes id the task credited when the focus session completes
func (s *State) BindTask(id int64) Effects {
	if domain.FindTask(s.tasks, id) < 0 {
		return nil
	}
	s.machine.SetCurrentTask(&id)
	return Effects{Sync{}}
}

// SavePreset stores the current durations as a new preset
func (s *State) SavePreset() Effects {
	name := fmt.Sprintf("Custom Preset %d", len(s.presets)+1)
	s.presets = append(s.presets, domain.Preset{
		Name:               name,
		FocusDuration:      s.settings.FocusDuration,
		ShortBreakDuration: s.settings.ShortBreakDuration,
	})
	var effects Effects
	effects.add(Persist{})
	effects.notify(domain.NotifySuccess, fmt.Sprintf("Preset %q saved!", name))
	return effects
}

// ApplyPreset loads a preset's durations and re-times a focus session
func (s *State) ApplyPreset(name string) Effects {
	for _, preset := range s.presets {
		if preset.Name != name {
			continue
		}
		s.settings.FocusDuration = preset.FocusDuration
		s.settings.ShortBreakDuration = preset.ShortBreakDuration
		s.settings = s.settings.Normalize()
		s.machine.Retime(domain.ModeFocus, s.settings.DurationFor(domain.ModeFocus))

		var effects Effects
		effects.add(Persist{}, Sync{})
		effects.notify(domain.NotifySuccess, fmt.Sprintf("Applied preset %q", name))
		return effects
	}
	return nil
}

// NextPresetName returns the preset after current, wrapping around
func (s *State) NextPresetName(current string) (string, bool) {
	if len(s.presets) == 0 {
		return "", false
	}
	for i, preset := range s.presets {
		if preset.Name == current {
			return s.presets[(i+1)%len(s.presets)].Name, true
		}
	}
	return s.presets[0].Name, true
}

// Import replaces the durable records with imported ones
func (s *State) Import(records domain.Records) Effects {
	s.replaceRecords(records)

	var effects Effects
	effects.add(ThemeChanged{Theme: s.settings.Theme})
	s.setMode(&effects, s.machine.State().CurrentMode)
	effects.add(Persist{}, Sync{})
	effects.notify(domain.NotifySuccess, "Data imported successfully!")
	return effects
}

// ApplyRemoteTimer overwrites the timer with a snapshot written by the other
// window. There is no merge: the snapshot processed last wins.
func (s *State) ApplyRemoteTimer(snapshot domain.TimerState) {
	s.machine.Restore(snapshot)
}

// ApplyRemoteMedia overwrites the media state with one written by the other window
func (s *State) ApplyRemoteMedia(media domain.MediaState) {
	s.media = media
}

// ApplyRemoteSettings overwrites the settings another process wrote. Only a
// stopped session is re-timed; a running or paused one keeps its countdown.
func (s *State) ApplyRemoteSettings(settings domain.Settings) Effects {
	previous := s.settings
	s.settings = settings.Normalize()

	var effects Effects
	if s.settings.Theme != previous.Theme {
		effects.add(ThemeChanged{Theme: s.settings.Theme})
	}
	timer := s.machine.State()
	seconds := s.settings.DurationFor(timer.CurrentMode)
	if !timer.IsRunning && !timer.IsPaused && seconds != previous.DurationFor(timer.CurrentMode) {
		s.machine.Retime(timer.CurrentMode, seconds)
		effects.add(Sync{})
	}
	return effects
}

// ApplyRemoteStats overwrites the counters another process wrote
func (s *State) ApplyRemoteStats(stats domain.Stats) {
	s.stats = stats
}

// ApplyRemoteTasks overwrites the task list another process wrote. A bound
// task that no longer exists is unbound.
func (s *State) ApplyRemoteTasks(tasks []domain.Task) Effects {
	s.tasks = append([]domain.Task{}, tasks...)
	domain.SortTasks(s.tasks)

	current := s.machine.State().CurrentTask
	if current == nil || domain.FindTask(s.tasks, *current) >= 0 {
		return nil
	}
	s.machine.SetCurrentTask(nil)
	return Effects{Sync{}}
}

// ApplyRemotePresets overwrites the presets another process wrote
func (s *State) ApplyRemotePresets(presets []domain.Preset) {
	s.presets = append([]domain.Preset{}, presets...)
}

// SetCompanionActive records whether the companion window is open. Closing
// it stops the music.
func (s *State) SetCompanionActive(active bool) Effects {
	s.machine.SetCompanionActive(active)

	var effects Effects
	if !active && s.media.IsPlaying {
		s.media.IsPlaying = false
		effects.add(MediaCommand{Op: MediaPause})
	}
	effects.add(Sync{})
	return effects
}

// ToggleMedia flips the music on or off; music only plays during focus
func (s *State) ToggleMedia() Effects {
	var effects Effects
	s.media.IsPlaying = !s.media.IsPlaying
	switch {
	case s.machine.State().CurrentMode != domain.ModeFocus:
		s.media.IsPlaying = false
		effects.add(MediaCommand{Op: MediaPause})
	case s.media.IsPlaying:
		effects.add(MediaCommand{Op: MediaPlay})
	default:
		effects.add(MediaCommand{Op: MediaPause})
	}
	effects.add(Sync{})
	return effects
}

// NextTrack skips to the next song
func (s *State) NextTrack() Effects {
	return Effects{MediaCommand{Op: MediaNext}}
}

// PrevTrack goes back to the previous song
func (s *State) PrevTrack() Effects {
	return Effects{MediaCommand{Op: MediaPrevious}}
}

// TrackChanged records the track shown after a successful skip
func (s *State) TrackChanged(track domain.Track) Effects {
	s.media.CurrentTrack = track
	return Effects{Sync{}}
}

func (s *State) setMode(effects *Effects, mode domain.Mode) {
	s.machine.SetMode(mode, s.settings.DurationFor(mode))
	if mode == domain.ModeShortBreak && s.media.IsPlaying {
		s.media.IsPlaying = false
		effects.add(MediaCommand{Op: MediaPause})
	}
}

func (s *State) start(effects *Effects) {
	generation := s.machine.Start()
	if s.machine.State().CurrentMode == domain.ModeFocus && s.media.IsPlaying {
		effects.add(MediaCommand{Op: MediaPlay})
	}
	effects.add(ScheduleTick{Generation: generation})
	effects.notify(domain.NotifySuccess, "Timer started! 🍅")
}

func (s *State) pause(effects *Effects) {
	s.machine.Pause()
	if s.machine.State().CurrentMode == domain.ModeFocus && s.media.IsPlaying {
		effects.add(MediaCommand{Op: MediaPause})
	}
	effects.notify(domain.NotifyInfo, "Timer paused")
}

func (s *State) complete(effects *Effects) {
	state := s.machine.State()
	s.machine.Finish()
	effects.add(Bell{})

	if state.CurrentMode == domain.ModeFocus {
		minutes := state.TotalTime / 60
		s.stats.RecordFocus(minutes)
		s.machine.CountCompletion()
		if state.CurrentTask != nil {
			if index := domain.FindTask(s.tasks, *state.CurrentTask); index >= 0 {
				s.tasks[index].Completed = true
				s.tasks[index].TimeSpent += minutes
			}
		}
		effects.notify(domain.NotifySuccess, "Focus session completed! 🎉")
	} else {
		effects.notify(domain.NotifySuccess, "Short break completed! 🌴")
	}

	s.setMode(effects, state.CurrentMode.Next())
	s.start(effects)
	effects.add(Persist{})
}

func (s *State) replaceRecords(records domain.Records) {
	s.settings = records.Settings.Normalize()
	s.stats = records.Stats
	s.tasks = append([]domain.Task{}, records.Tasks...)
	domain.SortTasks(s.tasks)
	s.presets = append([]domain.Preset{}, records.Presets...)
}
