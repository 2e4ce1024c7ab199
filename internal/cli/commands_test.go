package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/tomodoro/internal/config"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/logging"
	"github.com/riordanpawley/tomodoro/internal/services/diagnostics"
	"github.com/riordanpawley/tomodoro/internal/store"
)

func newTestDeps(t *testing.T) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	s := store.NewMemoryHub().Open()
	out := &bytes.Buffer{}
	return &Dependencies{
		Config: config.DefaultConfig(),
		Store:  s,
		Mirror: store.NewMirror(s),
		Logger: logging.Discard(),
		Out:    out,
		Now:    func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	}, out
}

func TestStatusCommand_NothingSynced(t *testing.T) {
	deps, out := newTestDeps(t)

	require.NoError(t, StatusCommand(deps))

	assert.Contains(t, out.String(), "FOCUS")
	assert.Contains(t, out.String(), "stopped")
	assert.Contains(t, out.String(), "25:00")
	assert.Contains(t, out.String(), "Sessions: 25 min focus / 5 min break")
}

func TestStatusCommand_SyncedTimer(t *testing.T) {
	deps, out := newTestDeps(t)
	require.NoError(t, deps.Mirror.SaveTimer(domain.TimerState{
		IsRunning:     true,
		CurrentMode:   domain.ModeShortBreak,
		TimeRemaining: 61,
		TotalTime:     300,
		PipActive:     true,
	}))

	require.NoError(t, StatusCommand(deps))

	assert.Contains(t, out.String(), "SHORT BREAK")
	assert.Contains(t, out.String(), "running")
	assert.Contains(t, out.String(), "01:01")
	assert.Contains(t, out.String(), "open")
}

func TestTasksCommand(t *testing.T) {
	deps, out := newTestDeps(t)
	require.NoError(t, TasksCommand(deps))
	assert.Equal(t, "No tasks\n", out.String())

	out.Reset()
	require.NoError(t, deps.Mirror.SaveRecords(domain.Records{
		Settings: domain.DefaultSettings(),
		Tasks: []domain.Task{
			{ID: 1, Text: "Low one", Priority: domain.PriorityLow},
			{ID: 2, Text: "Urgent one", Priority: domain.PriorityHigh, Completed: true, TimeSpent: 25},
		},
	}))
	require.NoError(t, TasksCommand(deps))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "Urgent one")
	assert.Contains(t, string(lines[1]), "25m")
	assert.Contains(t, string(lines[2]), "Low one")
}

func TestExportImportCommands(t *testing.T) {
	deps, out := newTestDeps(t)
	dir := t.TempDir()
	require.NoError(t, deps.Mirror.SaveRecords(domain.Records{
		Settings: domain.Settings{FocusDuration: 45, ShortBreakDuration: 15, Theme: "forest"},
		Tasks:    []domain.Task{{ID: 7, Text: "Backed up", Priority: domain.PriorityMedium}},
		Presets:  []domain.Preset{{Name: "Long", FocusDuration: 45, ShortBreakDuration: 15}},
	}))

	require.NoError(t, ExportCommand(deps, dir))
	path := filepath.Join(dir, "tomodoro_data.json")
	assert.Contains(t, out.String(), path)

	other, _ := newTestDeps(t)
	require.NoError(t, ImportCommand(other, path))

	records, err := other.Mirror.LoadRecords(domain.Records{})
	require.NoError(t, err)
	assert.Equal(t, 45, records.Settings.FocusDuration)
	assert.Equal(t, "forest", records.Settings.Theme)
	require.Len(t, records.Tasks, 1)
	assert.Equal(t, "Backed up", records.Tasks[0].Text)
	require.Len(t, records.Presets, 1)
}

func TestImportCommand_MissingFile(t *testing.T) {
	deps, _ := newTestDeps(t)
	err := ImportCommand(deps, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	assert.Contains(t, buf.String(), "export [dir]")
	assert.Contains(t, buf.String(), "--config")
	assert.Contains(t, buf.String(), "doctor")
}

func TestDoctorCommand(t *testing.T) {
	deps, out := newTestDeps(t)
	svc := diagnostics.NewService(diagnostics.Options{
		StoreDir:         t.TempDir(),
		CompanionCommand: []string{"tomodoro-pip"},
		LookPath:         func(string) (string, error) { return "/bin/tomodoro-pip", nil },
	})

	require.NoError(t, DoctorCommand(context.Background(), deps, svc))
	assert.Contains(t, out.String(), "System Status: DEGRADED")
	assert.Contains(t, out.String(), "Not running inside tmux")
}

func TestDoctorCommand_Critical(t *testing.T) {
	deps, out := newTestDeps(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	svc := diagnostics.NewService(diagnostics.Options{StoreDir: filepath.Join(blocker, "store")})

	err := DoctorCommand(context.Background(), deps, svc)
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.Contains(t, out.String(), "ERRORS:")
}
