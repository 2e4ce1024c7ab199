// Package pip is the companion window: a compact mirror of the main
// window's timer and music player that relays its keys back as commands.
// It owns no state of its own; everything it shows is a replica that the
// main window's writes overwrite.
package pip

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/core/replica"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/store"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// Link is the connection to the main window
type Link interface {
	Bootstrap() companion.Bootstrap
	Messages() <-chan companion.Message
	Send(action companion.Action) error
	Close() error
}

// Options wires the companion window
type Options struct {
	Link   Link
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// Model is the companion window state
type Model struct {
	link    Link
	changes <-chan store.Change
	logger  *slog.Logger
	now     func() time.Time

	timer *replica.Cell[domain.TimerState]
	media *replica.Cell[domain.MediaState]

	themes map[string]string
	styles *styles.Styles
	keys   KeyMap
	toasts []types.Toast

	width  int
	height int
}

// New builds the window from the bootstrap snapshot, then from whatever
// newer snapshots the store already holds.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	bootstrap := opts.Link.Bootstrap()
	m := Model{
		link:    opts.Link,
		changes: opts.Store.Subscribe(16),
		logger:  logger.With("component", "pip"),
		now:     now,
		timer:   replica.NewCell(bootstrap.Timer),
		media:   replica.NewCell(bootstrap.Media),
		themes:  bootstrap.Themes,
		styles:  styles.New(bootstrap.Theme),
		keys:    DefaultKeyMap(),
	}

	mirror := store.NewMirror(opts.Store)
	if timer, ok, err := mirror.LoadTimer(); err != nil {
		m.logger.Warn("stored timer snapshot unreadable", "error", err)
	} else if ok {
		m.timer.ApplyRemote(timer)
	}
	if media, ok, err := mirror.LoadMedia(); err != nil {
		m.logger.Warn("stored media snapshot unreadable", "error", err)
	} else if ok {
		m.media.ApplyRemote(media)
	}
	return m
}

// Timer returns the replicated timer snapshot
func (m Model) Timer() domain.TimerState {
	return m.timer.Value()
}

// Media returns the replicated media snapshot
func (m Model) Media() domain.MediaState {
	return m.media.Value()
}

// Theme returns the active theme
func (m Model) Theme() string {
	return m.styles.Theme
}

// Init starts listening to the store and the main window
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), waitForMessage(m.link.Messages()))
}

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case storeChangeMsg:
		m.applyChange(msg.change)
		return m, waitForChange(m.changes)

	case linkMsg:
		if !msg.ok {
			m.logger.Info("main window went away")
			return m, tea.Quit
		}
		cmd := m.handleMessage(msg.message)
		return m, tea.Batch(cmd, waitForMessage(m.link.Messages()))

	case sendFailedMsg:
		m.logger.Warn("command not delivered", "action", msg.action, "error", msg.err)
		return m, m.notify(domain.NotifyError, "Main window not reachable")

	case toastExpiryMsg:
		m.toasts = types.ExpireToasts(m.toasts, m.now())
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		if err := m.link.Close(); err != nil {
			m.logger.Debug("closing link failed", "error", err)
		}
		return m, tea.Quit
	case key.Matches(msg, k.Toggle):
		return m, m.send(companion.ActionToggleTimer)
	case key.Matches(msg, k.Reset):
		return m, m.send(companion.ActionResetTimer)
	case key.Matches(msg, k.Skip):
		return m, m.send(companion.ActionSkipTimer)
	case key.Matches(msg, k.Music):
		return m, m.send(companion.ActionToggleMedia)
	case key.Matches(msg, k.NextTrack):
		return m, m.send(companion.ActionNextTrack)
	case key.Matches(msg, k.PrevTrack):
		return m, m.send(companion.ActionPrevTrack)
	}
	return m, nil
}

func (m Model) send(action companion.Action) tea.Cmd {
	link := m.link
	return func() tea.Msg {
		if err := link.Send(action); err != nil {
			return sendFailedMsg{action: action, err: err}
		}
		return nil
	}
}

// applyChange overwrites the replica with a record the main window wrote
func (m *Model) applyChange(change store.Change) {
	switch change.Key {
	case store.KeyTimerState:
		timer, err := store.DecodeTimerState(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid timer snapshot", "error", err)
			return
		}
		version := m.timer.ApplyRemote(timer)
		m.logger.Debug("timer snapshot applied", "version", version, "remaining", timer.TimeRemaining)
	case store.KeyMediaState:
		media, err := store.DecodeMediaState(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid media snapshot", "error", err)
			return
		}
		version := m.media.ApplyRemote(media)
		m.logger.Debug("media snapshot applied", "version", version, "playing", media.IsPlaying)
	case store.KeySettings:
		settings, err := store.DecodeSettings(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid settings", "error", err)
			return
		}
		m.setTheme(settings.Theme)
	}
}

func (m *Model) handleMessage(msg companion.Message) tea.Cmd {
	switch msg.Action {
	case companion.ActionShowNotification:
		return m.notify(msg.Kind, msg.Message)
	case companion.ActionUpdateTheme:
		m.setTheme(msg.Theme)
	case companion.ActionInit:
		// A second init only happens on reconnect; take its snapshot
		m.timer.ApplyRemote(msg.Bootstrap.Timer)
		m.media.ApplyRemote(msg.Bootstrap.Media)
		m.setTheme(msg.Bootstrap.Theme)
	}
	return nil
}

func (m *Model) setTheme(theme string) {
	if theme == m.styles.Theme {
		return
	}
	if _, ok := m.themes[theme]; !ok && len(m.themes) > 0 {
		m.logger.Debug("unknown theme", "theme", theme)
		return
	}
	m.styles = styles.New(theme)
}

func (m *Model) notify(kind domain.NotificationKind, message string) tea.Cmd {
	m.toasts = append(m.toasts, types.NewToast(kind, message, m.now()))
	return expireToastsAfter(types.ToastDuration)
}
