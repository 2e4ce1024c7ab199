package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTimerState_Validate(t *testing.T) {
	valid := DefaultTimerState()

	tests := []struct {
		name    string
		mutate  func(*TimerState)
		wantErr bool
	}{
		{"default", func(*TimerState) {}, false},
		{"running", func(s *TimerState) { s.IsRunning = true }, false},
		{"running and paused", func(s *TimerState) { s.IsRunning = true; s.IsPaused = true }, true},
		{"unknown mode", func(s *TimerState) { s.CurrentMode = "longBreak" }, true},
		{"zero total", func(s *TimerState) { s.TotalTime = 0; s.TimeRemaining = 0 }, true},
		{"negative remaining", func(s *TimerState) { s.TimeRemaining = -1 }, true},
		{"remaining above total", func(s *TimerState) { s.TimeRemaining = s.TotalTime + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSnapshot) {
					t.Errorf("Validate() = %v, want ErrInvalidSnapshot", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestTimerState_Progress(t *testing.T) {
	s := TimerState{TotalTime: 1500, TimeRemaining: 750}
	if got := s.Progress(); got != 0.5 {
		t.Errorf("Progress() = %v, want 0.5", got)
	}

	s = TimerState{}
	if got := s.Progress(); got != 0 {
		t.Errorf("Progress() with zero total = %v, want 0", got)
	}
}

func TestMode_Labels(t *testing.T) {
	if ModeFocus.Label() != "FOCUS" || ModeShortBreak.Label() != "SHORT BREAK" {
		t.Error("unexpected mode labels")
	}
	if ModeFocus.Next() != ModeShortBreak || ModeShortBreak.Next() != ModeFocus {
		t.Error("modes should alternate")
	}
}

func TestStats_ResetIfNewDay(t *testing.T) {
	yesterday := time.Date(2026, 10, 17, 22, 0, 0, 0, time.UTC)
	today := yesterday.Add(4 * time.Hour)

	stats := Stats{
		CompletedPomodoros: 12,
		TotalTime:          300,
		CurrentStreak:      4,
		TodayPomodoros:     3,
		LastDate:           DateKey(yesterday),
	}

	if !stats.ResetIfNewDay(DateKey(today)) {
		t.Fatal("ResetIfNewDay() = false, want true")
	}
	want := Stats{
		CompletedPomodoros: 12,
		TotalTime:          300,
		CurrentStreak:      4,
		TodayPomodoros:     0,
		LastDate:           DateKey(today),
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	if stats.ResetIfNewDay(DateKey(today)) {
		t.Error("second ResetIfNewDay() on same day = true, want false")
	}
}

func TestSettings_Normalize(t *testing.T) {
	got := Settings{FocusDuration: 0, ShortBreakDuration: -3, Theme: "neon"}.Normalize()
	if got != DefaultSettings() {
		t.Errorf("Normalize() = %+v, want defaults", got)
	}

	custom := Settings{FocusDuration: 50, ShortBreakDuration: 10, Theme: "ocean"}
	if custom.Normalize() != custom {
		t.Error("Normalize() should keep valid settings")
	}
	if custom.DurationFor(ModeFocus) != 3000 || custom.DurationFor(ModeShortBreak) != 600 {
		t.Error("DurationFor() should convert minutes to seconds")
	}
}

func TestNextTheme(t *testing.T) {
	names := ThemeNames()
	if names[0] != DefaultTheme {
		t.Fatalf("ThemeNames()[0] = %q, want %q", names[0], DefaultTheme)
	}

	current := DefaultTheme
	for range names {
		current = NextTheme(current)
	}
	if current != DefaultTheme {
		t.Errorf("cycling through all themes should return to default, got %q", current)
	}
	if NextTheme("missing") != DefaultTheme {
		t.Error("unknown theme should fall back to default")
	}
}
