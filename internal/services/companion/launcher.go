package companion

import (
	"context"
	"errors"
	"fmt"

	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/tmux"
)

// paneClient is the subset of the tmux client the launcher uses
type paneClient interface {
	InSession() bool
	SplitWindow(ctx context.Context, opts tmux.SplitOptions) (string, error)
	SelectPane(ctx context.Context, paneID string) error
	KillPane(ctx context.Context, paneID string) error
}

// PaneOptions describes the companion pane
type PaneOptions struct {
	// Command is the companion program and its fixed arguments
	Command []string
	Width   int
	// Dir is the pane's working directory
	Dir string
	// Args follow Command; they carry the opener's resolved settings so that
	// both processes open the same store
	Args []string
}

// TmuxLauncher opens the companion in a tmux pane beside the main window
type TmuxLauncher struct {
	client paneClient
	opts   PaneOptions
}

// NewTmuxLauncher creates a launcher running opts.Command, opts.Args and
// --socket <path> in a side pane.
func NewTmuxLauncher(client paneClient, opts PaneOptions) *TmuxLauncher {
	return &TmuxLauncher{client: client, opts: opts}
}

// Launch implements Launcher
func (l *TmuxLauncher) Launch(ctx context.Context, socketPath string) (Surface, error) {
	if !l.client.InSession() {
		return nil, fmt.Errorf("%w: not running inside tmux", domain.ErrCompanionUnavailable)
	}
	if len(l.opts.Command) == 0 {
		return nil, fmt.Errorf("%w: no companion command configured", domain.ErrCompanionUnavailable)
	}

	command := append([]string{}, l.opts.Command...)
	command = append(command, l.opts.Args...)
	command = append(command, "--socket", socketPath)
	paneID, err := l.client.SplitWindow(ctx, tmux.SplitOptions{
		Width:    l.opts.Width,
		Command:  command,
		StartDir: l.opts.Dir,
	})
	if err != nil {
		return nil, errors.Join(domain.ErrCompanionUnavailable, err)
	}
	return &tmuxPane{client: l.client, id: paneID}, nil
}

type tmuxPane struct {
	client paneClient
	id     string
}

func (p *tmuxPane) ID() string { return p.id }

func (p *tmuxPane) Focus(ctx context.Context) error {
	return p.client.SelectPane(ctx, p.id)
}

func (p *tmuxPane) Close(ctx context.Context) error {
	return p.client.KillPane(ctx, p.id)
}
