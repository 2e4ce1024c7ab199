package media

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// ReadyMessage is shown once when the player first becomes reachable
const ReadyMessage = "Music player loaded!"

// NotReadyMessage is shown when a command arrives before the player is ready
const NotReadyMessage = "Music player is not ready yet. Please wait."

// MissingMessage is shown when no player is configured
const MissingMessage = "Music player not found!"

// ResultMsg reports the outcome of a command
type ResultMsg struct {
	Command Command
	Err     error
}

// Controller relays commands to the player once it is ready. Commands are
// never queued or retried.
type Controller struct {
	transport Transport
	logger    *slog.Logger
	timeout   time.Duration
	ready     atomic.Bool
}

// NewController creates a controller. A nil transport means no player is
// configured; every command then fails with domain.ErrNotFound.
func NewController(transport Transport, logger *slog.Logger, timeout time.Duration) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Controller{
		transport: transport,
		logger:    logger.With("component", "media"),
		timeout:   timeout,
	}
}

// MarkReady records that the player is reachable. Reports true only the
// first time.
func (c *Controller) MarkReady() bool {
	return c.ready.CompareAndSwap(false, true)
}

// Ready reports whether commands are accepted
func (c *Controller) Ready() bool {
	return c.ready.Load()
}

// Available reports whether a player is configured at all
func (c *Controller) Available() bool {
	return c.transport != nil
}

// Do sends cmd to the player
func (c *Controller) Do(ctx context.Context, cmd Command) error {
	if c.transport == nil {
		return &domain.MediaError{Op: string(cmd), Err: domain.ErrNotFound}
	}
	if !c.Ready() {
		return &domain.MediaError{Op: string(cmd), Err: domain.ErrMediaNotReady}
	}
	if err := c.transport.Send(ctx, cmd); err != nil {
		c.logger.Warn("media command failed", "command", cmd, "error", err)
		return &domain.MediaError{Op: string(cmd), Err: err}
	}
	c.logger.Debug("media command sent", "command", cmd)
	return nil
}

// Play starts playback
func (c *Controller) Play(ctx context.Context) error { return c.Do(ctx, CommandPlay) }

// Pause stops playback
func (c *Controller) Pause(ctx context.Context) error { return c.Do(ctx, CommandPause) }

// Next skips to the next track
func (c *Controller) Next(ctx context.Context) error { return c.Do(ctx, CommandNext) }

// Previous goes back a track
func (c *Controller) Previous(ctx context.Context) error { return c.Do(ctx, CommandPrevious) }

// Cmd runs cmd off the UI goroutine and reports a ResultMsg
func (c *Controller) Cmd(cmd Command) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		return ResultMsg{Command: cmd, Err: c.Do(ctx, cmd)}
	}
}

// Outcome is what the user sees after a command
type Outcome struct {
	Message string
	Kind    domain.NotificationKind
	// Track is the placeholder metadata to display after a successful skip
	Track *domain.Track
	// Fallback says how to reveal the player panel after a failure
	Fallback Fallback
}

// Fallback reveals the player panel so the user can act on it directly
type Fallback struct {
	Show bool
	// HideAfter hides the panel again; zero means hide immediately
	HideAfter time.Duration
}

// fallbackFlash is how long the panel stays visible after a failed play
const fallbackFlash = 100 * time.Millisecond

// Describe turns a command result into the notification and follow-up the
// user sees. Successful skips have no message, only new track metadata.
func Describe(cmd Command, err error) Outcome {
	if err == nil {
		switch cmd {
		case CommandPlay:
			return Outcome{Message: "Playing music", Kind: domain.NotifySuccess}
		case CommandPause:
			return Outcome{Message: "Paused music", Kind: domain.NotifySuccess}
		case CommandNext:
			track := domain.NextTrackPlaceholder
			return Outcome{Track: &track}
		case CommandPrevious:
			track := domain.PreviousTrackPlaceholder
			return Outcome{Track: &track}
		}
		return Outcome{}
	}

	if errors.Is(err, domain.ErrNotFound) {
		return Outcome{Message: MissingMessage, Kind: domain.NotifyError}
	}
	if errors.Is(err, domain.ErrMediaNotReady) {
		return Outcome{Message: NotReadyMessage, Kind: domain.NotifyInfo}
	}

	switch cmd {
	case CommandPlay:
		return Outcome{
			Message:  "Failed to play music. Make sure the player is signed in.",
			Kind:     domain.NotifyError,
			Fallback: Fallback{Show: true, HideAfter: fallbackFlash},
		}
	case CommandPause:
		return Outcome{
			Message:  "Failed to pause music.",
			Kind:     domain.NotifyError,
			Fallback: Fallback{Show: false},
		}
	case CommandNext:
		return Outcome{Message: "Failed to skip to next track.", Kind: domain.NotifyError}
	case CommandPrevious:
		return Outcome{Message: "Failed to go to previous track.", Kind: domain.NotifyError}
	}
	return Outcome{Message: err.Error(), Kind: domain.NotifyError}
}
