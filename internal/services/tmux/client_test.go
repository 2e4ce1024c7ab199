package tmux

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner implements CommandRunner for testing
type mockRunner struct {
	output string
	err    error
	args   []string
}

func (m *mockRunner) Run(ctx context.Context, args ...string) (string, error) {
	m.args = args
	return m.output, m.err
}

func TestClient_SplitWindow(t *testing.T) {
	tests := []struct {
		name     string
		opts     SplitOptions
		output   string
		runErr   error
		wantErr  bool
		wantPane string
		wantArgs []string
	}{
		{
			name:     "split with width",
			opts:     SplitOptions{Width: 40, Command: []string{"tomodoro-pip", "--socket", "/tmp/s"}},
			output:   "%12\n",
			wantPane: "%12",
			wantArgs: []string{"split-window", "-d", "-h", "-l", "40", "-P", "-F", "#{pane_id}", "tomodoro-pip", "--socket", "/tmp/s"},
		},
		{
			name:     "split in a directory",
			opts:     SplitOptions{Width: 36, StartDir: "/work/notes", Command: []string{"pip"}},
			output:   "%4\n",
			wantPane: "%4",
			wantArgs: []string{"split-window", "-d", "-h", "-l", "36", "-c", "/work/notes", "-P", "-F", "#{pane_id}", "pip"},
		},
		{
			name:     "split without width",
			opts:     SplitOptions{Command: []string{"pip"}},
			output:   "%3",
			wantPane: "%3",
			wantArgs: []string{"split-window", "-d", "-h", "-P", "-F", "#{pane_id}", "pip"},
		},
		{
			name:    "runner error",
			opts:    SplitOptions{Command: []string{"pip"}},
			runErr:  errors.New("no space for new pane"),
			wantErr: true,
		},
		{
			name:    "empty pane id",
			opts:    SplitOptions{Command: []string{"pip"}},
			output:  "  \n",
			wantErr: true,
		},
		{
			name:    "no command",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{output: tt.output, err: tt.runErr}
			client := NewClient(runner, slog.Default())

			pane, err := client.SplitWindow(context.Background(), tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				var tmuxErr *domain.TmuxError
				assert.ErrorAs(t, err, &tmuxErr)
				assert.Equal(t, "split-window", tmuxErr.Op)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPane, pane)
			assert.Equal(t, tt.wantArgs, runner.args)
		})
	}
}

func TestClient_SelectAndKillPane(t *testing.T) {
	runner := &mockRunner{}
	client := NewClient(runner, slog.Default())

	require.NoError(t, client.SelectPane(context.Background(), "%7"))
	assert.Equal(t, []string{"select-pane", "-t", "%7"}, runner.args)

	require.NoError(t, client.KillPane(context.Background(), "%7"))
	assert.Equal(t, []string{"kill-pane", "-t", "%7"}, runner.args)

	runner.err = errors.New("can't find pane")
	err := client.KillPane(context.Background(), "%7")
	var tmuxErr *domain.TmuxError
	require.ErrorAs(t, err, &tmuxErr)
	assert.Equal(t, "%7", tmuxErr.Target)
	assert.Equal(t, "kill-pane", tmuxErr.Op)
}

func TestClient_HasPane(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		runErr   error
		wantBool bool
	}{
		{name: "pane exists", output: "%4\n", wantBool: true},
		{name: "pane missing", runErr: errors.New("can't find pane"), wantBool: false},
		{name: "different pane", output: "%5", wantBool: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&mockRunner{output: tt.output, err: tt.runErr}, slog.Default())

			exists, err := client.HasPane(context.Background(), "%4")

			require.NoError(t, err)
			assert.Equal(t, tt.wantBool, exists)
		})
	}
}

func TestClient_ListPanes(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		runErr  error
		want    []string
		wantErr bool
	}{
		{name: "multiple panes", output: "%0\n%1\n", want: []string{"%0", "%1"}},
		{name: "empty output", output: "", want: []string{}},
		{name: "runner error", runErr: errors.New("no server"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&mockRunner{output: tt.output, err: tt.runErr}, slog.Default())

			panes, err := client.ListPanes(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, panes)
		})
	}
}

func TestClient_InSession(t *testing.T) {
	client := NewClient(&mockRunner{}, slog.Default())

	client.getenv = func(string) string { return "" }
	assert.False(t, client.InSession())

	client.getenv = func(key string) string {
		if key == "TMUX" {
			return "/tmp/tmux-1000/default,123,0"
		}
		return ""
	}
	assert.True(t, client.InSession())
}
