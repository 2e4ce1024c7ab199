package companion

import (
	"context"
	"errors"
	"testing"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/tmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanes struct {
	inSession bool
	splitErr  error
	split     tmux.SplitOptions
	selected  string
	killed    string
}

func (f *fakePanes) InSession() bool { return f.inSession }

func (f *fakePanes) SplitWindow(ctx context.Context, opts tmux.SplitOptions) (string, error) {
	f.split = opts
	if f.splitErr != nil {
		return "", f.splitErr
	}
	return "%9", nil
}

func (f *fakePanes) SelectPane(ctx context.Context, paneID string) error {
	f.selected = paneID
	return nil
}

func (f *fakePanes) KillPane(ctx context.Context, paneID string) error {
	f.killed = paneID
	return nil
}

func TestTmuxLauncher_Launch(t *testing.T) {
	panes := &fakePanes{inSession: true}
	launcher := NewTmuxLauncher(panes, PaneOptions{
		Command: []string{"tomodoro-pip"},
		Width:   36,
		Dir:     "/work/project",
		Args:    []string{"--config", "/work/project/custom.json", "--store-dir", "/data/mystore", "--namespace", "team"},
	})

	surface, err := launcher.Launch(context.Background(), "/tmp/tomodoro.sock")

	require.NoError(t, err)
	assert.Equal(t, "%9", surface.ID())
	assert.Equal(t, 36, panes.split.Width)
	assert.Equal(t, "/work/project", panes.split.StartDir)
	assert.Equal(t, []string{
		"tomodoro-pip",
		"--config", "/work/project/custom.json",
		"--store-dir", "/data/mystore",
		"--namespace", "team",
		"--socket", "/tmp/tomodoro.sock",
	}, panes.split.Command)

	require.NoError(t, surface.Focus(context.Background()))
	assert.Equal(t, "%9", panes.selected)
	require.NoError(t, surface.Close(context.Background()))
	assert.Equal(t, "%9", panes.killed)
}

func TestTmuxLauncher_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		panes *fakePanes
	}{
		{name: "outside tmux", panes: &fakePanes{}},
		{name: "split fails", panes: &fakePanes{inSession: true, splitErr: errors.New("pane too small")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			launcher := NewTmuxLauncher(tt.panes, PaneOptions{Command: []string{"pip"}, Width: 30})

			_, err := launcher.Launch(context.Background(), "/tmp/x.sock")

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCompanionUnavailable)
		})
	}
}
