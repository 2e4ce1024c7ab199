package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/archive"
	"github.com/riordanpawley/tomodoro/internal/core/appstate"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/services/media"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// companionTimeout bounds opening, focusing and closing the companion pane
const companionTimeout = 5 * time.Second

func shortContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), companionTimeout)
}

// apply carries out effects in order and returns the commands they need
func (m *Model) apply(effects appstate.Effects) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case appstate.Notify:
			cmds = append(cmds, m.notify(e.Kind, e.Message))

		case appstate.ScheduleTick:
			cmds = append(cmds, tickAfter(m.config.Timer.TickInterval(), e.Generation))

		case appstate.MediaCommand:
			cmds = append(cmds, m.media.Cmd(media.Command(e.Op)))

		case appstate.Bell:
			if _, err := m.bell.Write([]byte("\a")); err != nil {
				m.logger.Debug("bell failed", "error", err)
			}

		case appstate.Persist:
			if err := m.mirror.SaveRecords(m.state.Records()); err != nil {
				m.logger.Error("persisting records failed", "error", err)
			}

		case appstate.Sync:
			if err := m.mirror.SaveTimer(m.state.Timer()); err != nil {
				m.logger.Error("saving timer state failed", "error", err)
			}
			if err := m.mirror.SaveMedia(m.state.Media()); err != nil {
				m.logger.Error("saving media state failed", "error", err)
			}

		case appstate.ThemeChanged:
			m.styles = styles.New(e.Theme)
			m.channel.UpdateTheme(e.Theme)
		}
	}
	return tea.Batch(cmds...)
}

// notify shows a toast and mirrors it into the companion
func (m *Model) notify(kind domain.NotificationKind, message string) tea.Cmd {
	m.toasts = append(m.toasts, types.NewToast(kind, message, m.now()))
	m.channel.Notify(message, kind)
	return expireToastsAfter(types.ToastDuration)
}

func (m *Model) bootstrap() companion.Bootstrap {
	return companion.Bootstrap{
		Timer:  m.state.Timer(),
		Media:  m.state.Media(),
		Theme:  m.state.Settings().Theme,
		Themes: domain.ThemeTable(),
	}
}

// openCompanion launches (or focuses) the companion pane
func (m *Model) openCompanion() tea.Cmd {
	channel := m.channel
	bootstrap := m.bootstrap()
	return func() tea.Msg {
		ctx, cancel := shortContext()
		defer cancel()
		alreadyOpen, err := channel.Open(ctx, bootstrap)
		return companionOpenedMsg{alreadyOpen: alreadyOpen, err: err}
	}
}

func (m *Model) handleCompanionOpened(msg companionOpenedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("opening companion failed", "error", msg.err)
		if errors.Is(msg.err, domain.ErrCompanionUnavailable) {
			return m.notify(domain.NotifyError, "Companion pane unavailable! Run tomodoro inside tmux.")
		}
		return m.notify(domain.NotifyError, "Failed to open companion")
	}
	if msg.alreadyOpen {
		return nil
	}
	return m.apply(m.state.SetCompanionActive(true))
}

// closeCompanion closes the pane and returns the timer to the main window
func (m *Model) closeCompanion() tea.Cmd {
	ctx, cancel := shortContext()
	defer cancel()
	if err := m.channel.Close(ctx); err != nil {
		m.logger.Warn("closing companion failed", "error", err)
	}
	return m.apply(m.state.SetCompanionActive(false))
}

// handleCompanionEvent dispatches companion commands. Commands from a
// companion generation other than the current one are stale and dropped.
func (m *Model) handleCompanionEvent(event companion.Event) tea.Cmd {
	switch e := event.(type) {
	case companion.ConnectedEvent:
		m.logger.Debug("companion connected", "generation", e.Generation)
		return nil

	case companion.CommandEvent:
		if e.Generation != m.channel.Generation() {
			m.logger.Debug("stale companion command dropped", "action", e.Action, "generation", e.Generation)
			return nil
		}
		return m.dispatch(e.Action)

	case companion.ClosedEvent:
		if e.Unexpected {
			m.logger.Warn("companion went away", "generation", e.Generation, "error", e.Err)
		}
		if !m.channel.IsOpen() && m.state.Timer().PipActive {
			return m.apply(m.state.SetCompanionActive(false))
		}
	}
	return nil
}

func (m *Model) dispatch(action companion.Action) tea.Cmd {
	switch action {
	case companion.ActionToggleTimer:
		return m.apply(m.state.Toggle())
	case companion.ActionResetTimer:
		return m.apply(m.state.Reset())
	case companion.ActionSkipTimer:
		return m.apply(m.state.Skip())
	case companion.ActionToggleMedia:
		return m.apply(m.state.ToggleMedia())
	case companion.ActionNextTrack:
		return m.apply(m.state.NextTrack())
	case companion.ActionPrevTrack:
		return m.apply(m.state.PrevTrack())
	case companion.ActionCloseCompanion:
		return m.closeCompanion()
	}
	m.logger.Warn("unknown companion action", "action", action)
	return nil
}

// handleMediaResult reports a media command outcome to the user
func (m *Model) handleMediaResult(msg media.ResultMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("media command failed", "command", msg.Command, "error", msg.Err)
	}
	outcome := media.Describe(msg.Command, msg.Err)

	var cmds []tea.Cmd
	if outcome.Message != "" {
		cmds = append(cmds, m.notify(outcome.Kind, outcome.Message))
	}
	if outcome.Track != nil {
		cmds = append(cmds, m.apply(m.state.TrackChanged(*outcome.Track)))
	}
	if msg.Err != nil {
		m.showPlayer = outcome.Fallback.Show
		if outcome.Fallback.Show {
			cmds = append(cmds, tea.Tick(outcome.Fallback.HideAfter, func(time.Time) tea.Msg {
				return hidePlayerMsg{}
			}))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) defaultArchivePath() string {
	return filepath.Join(m.dataDir, archive.FileName)
}

func (m *Model) exportCmd() tea.Cmd {
	dir := m.dataDir
	records := m.state.Records()
	return func() tea.Msg {
		path, err := archive.ExportFile(dir, records)
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) importCmd(path string) tea.Cmd {
	current := m.state.Records()
	return func() tea.Msg {
		records, err := archive.ImportFile(path, current)
		return importedMsg{records: records, err: err}
	}
}
