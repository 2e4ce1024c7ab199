package tmux

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Client wraps the tmux CLI for the pane operations the companion needs
type Client struct {
	runner CommandRunner
	logger *slog.Logger
	getenv func(string) string
}

// NewClient creates a new tmux client with dependency injection
func NewClient(runner CommandRunner, logger *slog.Logger) *Client {
	return &Client{
		runner: runner,
		logger: logger,
		getenv: os.Getenv,
	}
}

// InSession reports whether the process runs inside a tmux client
func (c *Client) InSession() bool {
	return c.getenv("TMUX") != ""
}

// SplitOptions configures SplitWindow
type SplitOptions struct {
	// Width is the new pane's width in columns; zero lets tmux decide
	Width int
	// Command is the program (and arguments) run in the new pane
	Command []string
	// StartDir is the new pane's working directory; empty inherits tmux's
	StartDir string
}

// SplitWindow opens a pane beside the current one without focusing it and
// returns its pane id.
// Uses: tmux split-window -d -h [-l <width>] [-c <dir>] -P -F '#{pane_id}' <command...>
func (c *Client) SplitWindow(ctx context.Context, opts SplitOptions) (string, error) {
	c.logger.Debug("splitting tmux window", "width", opts.Width, "command", opts.Command)

	if len(opts.Command) == 0 {
		return "", &domain.TmuxError{Op: "split-window", Err: errors.New("no command")}
	}

	args := []string{"split-window", "-d", "-h"}
	if opts.Width > 0 {
		args = append(args, "-l", strconv.Itoa(opts.Width))
	}
	if opts.StartDir != "" {
		args = append(args, "-c", opts.StartDir)
	}
	args = append(args, "-P", "-F", "#{pane_id}")
	args = append(args, opts.Command...)

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", &domain.TmuxError{Op: "split-window", Err: err}
	}

	paneID := strings.TrimSpace(out)
	if paneID == "" {
		return "", &domain.TmuxError{Op: "split-window", Err: errors.New("tmux returned no pane id")}
	}

	c.logger.Debug("tmux pane created", "pane", paneID)
	return paneID, nil
}

// SelectPane focuses a pane
// Uses: tmux select-pane -t <pane>
func (c *Client) SelectPane(ctx context.Context, paneID string) error {
	c.logger.Debug("selecting tmux pane", "pane", paneID)

	_, err := c.runner.Run(ctx, "select-pane", "-t", paneID)
	if err != nil {
		return &domain.TmuxError{Op: "select-pane", Target: paneID, Err: err}
	}
	return nil
}

// KillPane closes a pane and the program running in it
// Uses: tmux kill-pane -t <pane>
func (c *Client) KillPane(ctx context.Context, paneID string) error {
	c.logger.Debug("killing tmux pane", "pane", paneID)

	_, err := c.runner.Run(ctx, "kill-pane", "-t", paneID)
	if err != nil {
		return &domain.TmuxError{Op: "kill-pane", Target: paneID, Err: err}
	}

	c.logger.Debug("tmux pane killed", "pane", paneID)
	return nil
}

// HasPane checks whether a pane still exists
// Uses: tmux display-message -p -t <pane> '#{pane_id}'
func (c *Client) HasPane(ctx context.Context, paneID string) (bool, error) {
	out, err := c.runner.Run(ctx, "display-message", "-p", "-t", paneID, "#{pane_id}")
	if err != nil {
		// display-message exits non-zero for a missing target.
		// This is expected, not an error
		c.logger.Debug("tmux pane not found", "pane", paneID)
		return false, nil
	}
	return strings.TrimSpace(out) == paneID, nil
}

// ListPanes returns the pane ids of the current window
// Uses: tmux list-panes -F "#{pane_id}"
func (c *Client) ListPanes(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "list-panes", "-F", "#{pane_id}")
	if err != nil {
		return nil, &domain.TmuxError{Op: "list-panes", Err: err}
	}

	panes := strings.Split(strings.TrimSpace(out), "\n")
	if len(panes) == 1 && panes[0] == "" {
		return []string{}, nil
	}
	return panes, nil
}
