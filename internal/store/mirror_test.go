package store

import (
	"errors"
	"testing"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_RecordsRoundTrip(t *testing.T) {
	mirror := NewMirror(NewMemoryHub().Open())
	records := domain.Records{
		Settings: domain.Settings{FocusDuration: 45, ShortBreakDuration: 10, Theme: "forest"},
		Stats:    domain.Stats{CompletedPomodoros: 3, TodayPomodoros: 1, LastDate: "Sat Mar 14 2026"},
		Tasks:    []domain.Task{{ID: 1, Text: "read", Priority: domain.PriorityHigh}},
		Presets:  []domain.Preset{{Name: "Long", FocusDuration: 50, ShortBreakDuration: 10}},
	}

	require.NoError(t, mirror.SaveRecords(records))
	loaded, err := mirror.LoadRecords(domain.Records{})

	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestMirror_LoadRecordsDefaultsMissingKeys(t *testing.T) {
	s := NewMemoryHub().Open()
	require.NoError(t, s.Put(KeySettings, []byte(`{"focusDuration":30}`)))
	defaults := domain.Records{
		Settings: domain.DefaultSettings(),
		Stats:    domain.Stats{LastDate: "today"},
		Tasks:    []domain.Task{},
		Presets:  []domain.Preset{},
	}

	loaded, err := NewMirror(s).LoadRecords(defaults)

	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Settings.FocusDuration)
	assert.Equal(t, domain.DefaultShortBreakMinutes, loaded.Settings.ShortBreakDuration)
	assert.Equal(t, domain.DefaultTheme, loaded.Settings.Theme)
	assert.Equal(t, "today", loaded.Stats.LastDate)
	assert.Empty(t, loaded.Tasks)
}

func TestMirror_TimerRoundTrip(t *testing.T) {
	mirror := NewMirror(NewMemoryHub().Open())

	_, ok, err := mirror.LoadTimer()
	require.NoError(t, err)
	assert.False(t, ok)

	id := int64(99)
	state := domain.DefaultTimerState()
	state.IsRunning = true
	state.TimeRemaining = 1000
	state.CurrentTask = &id
	require.NoError(t, mirror.SaveTimer(state))

	loaded, ok, err := mirror.LoadTimer()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, state, loaded)
}

func TestDecodeTimerState_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: `{"isRunning":`},
		{name: "unknown mode", raw: `{"currentMode":"longBreak","timeRemaining":10,"totalTime":10}`},
		{name: "running and paused", raw: `{"isRunning":true,"isPaused":true,"currentMode":"focus","timeRemaining":10,"totalTime":10}`},
		{name: "remaining exceeds total", raw: `{"currentMode":"focus","timeRemaining":20,"totalTime":10}`},
		{name: "zero total", raw: `{"currentMode":"focus","timeRemaining":0,"totalTime":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTimerState([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidSnapshot))
		})
	}
}

func TestDecodeSettings_Normalizes(t *testing.T) {
	settings, err := DecodeSettings([]byte(`{"theme":"neon"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}
