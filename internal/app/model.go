// Package app contains the main window model and TEA implementation.
package app

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/tomodoro/internal/config"
	"github.com/riordanpawley/tomodoro/internal/core/appstate"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/services/media"
	"github.com/riordanpawley/tomodoro/internal/store"
	"github.com/riordanpawley/tomodoro/internal/types"
	"github.com/riordanpawley/tomodoro/internal/ui/overlay"
	"github.com/riordanpawley/tomodoro/internal/ui/styles"
)

// Re-export Toast type for convenience
type Toast = types.Toast

// importKey names the import path prompt
const importKey = "import"

// Options wires the main window to its collaborators
type Options struct {
	Config  *config.Config
	Store   store.Store
	Channel *companion.Channel
	Media   *media.Controller
	// Prober checks player readiness; nil skips probing
	Prober *media.Prober
	Logger *slog.Logger
	// Now defaults to time.Now
	Now func() time.Time
	// Bell receives the completion bell; defaults to stderr
	Bell io.Writer
	// DataDir is where exports are written; defaults to the working directory
	DataDir string
}

// Model is the main window state
type Model struct {
	state   *appstate.State
	mirror  *store.Mirror
	changes <-chan store.Change
	channel *companion.Channel
	media   *media.Controller
	prober  *media.Prober
	config  *config.Config
	logger  *slog.Logger
	now     func() time.Time
	bell    io.Writer
	dataDir string

	keys     KeyMap
	overlays *overlay.Stack
	toasts   []Toast
	styles   *styles.Styles

	cursor     int
	presetName string
	showPlayer bool

	width  int
	height int

	// startup holds the commands produced while loading
	startup tea.Cmd
}

// New creates the main window, loading the durable records from the store
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	bell := opts.Bell
	if bell == nil {
		bell = os.Stderr
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	controller := opts.Media
	if controller == nil {
		controller = media.NewController(nil, logger, cfg.Media.Timeout())
	}

	state := appstate.New(now)
	mirror := store.NewMirror(opts.Store)

	m := Model{
		state:    state,
		mirror:   mirror,
		changes:  opts.Store.Subscribe(16),
		channel:  opts.Channel,
		media:    controller,
		prober:   opts.Prober,
		config:   cfg,
		logger:   logger.With("component", "app"),
		now:      now,
		bell:     bell,
		dataDir:  dataDir,
		keys:     DefaultKeyMap(),
		overlays: overlay.NewStack(),
		styles:   styles.New(domain.DefaultTheme),
	}

	var cmds []tea.Cmd
	records, err := mirror.LoadRecords(state.Records())
	if err != nil {
		m.logger.Error("loading saved records failed", "error", err)
		cmds = append(cmds, m.notify(domain.NotifyError, "Could not load saved data"))
	}
	effects := state.Load(records)
	effects = append(effects, appstate.Sync{})
	cmds = append(cmds, m.apply(effects))
	m.styles = styles.New(state.Settings().Theme)
	m.startup = tea.Batch(cmds...)
	return m
}

// State exposes the application state, mainly for tests
func (m Model) State() *appstate.State {
	return m.state
}

// Init starts the store and companion listeners, the readiness probe and
// the daily reset check
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.startup,
		waitForChange(m.changes),
		waitForEvent(m.channel.Events()),
		checkDayAfter(dayCheckInterval),
	}
	if m.prober != nil {
		cmds = append(cmds, m.prober.ProbeCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.overlays.IsEmpty() {
			return m, m.overlays.Update(msg)
		}
		return m.handleKey(msg)

	case overlay.CloseOverlayMsg:
		m.overlays.Update(msg)
		return m, nil

	case overlay.SelectionMsg:
		m.overlays.Update(msg)
		return m.handleSelection(msg)

	case tickMsg:
		return m, m.apply(m.state.Tick(msg.generation))

	case storeChangeMsg:
		cmd := m.applyRemote(msg.change)
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case companionEventMsg:
		cmd := m.handleCompanionEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.channel.Events()))

	case companionOpenedMsg:
		return m, m.handleCompanionOpened(msg)

	case media.ProbeMsg:
		if msg.Reachable {
			if m.media.MarkReady() {
				m.logger.Info("media player ready")
				return m, m.notify(domain.NotifySuccess, media.ReadyMessage)
			}
			return m, nil
		}
		return m, m.prober.RetryCmd(m.config.Media.ProbeInterval())

	case media.ResultMsg:
		return m, m.handleMediaResult(msg)

	case hidePlayerMsg:
		m.showPlayer = false
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.logger.Error("export failed", "error", msg.err)
			return m, m.notify(domain.NotifyError, "Error exporting data")
		}
		m.logger.Info("data exported", "path", msg.path)
		return m, m.notify(domain.NotifySuccess, "Data exported to "+msg.path)

	case importedMsg:
		if msg.err != nil {
			m.logger.Error("import failed", "error", msg.err)
			return m, m.notify(domain.NotifyError, "Error importing data")
		}
		m.cursor = 0
		return m, m.apply(m.state.Import(msg.records))

	case toastExpiryMsg:
		m.toasts = types.ExpireToasts(m.toasts, m.now())
		return m, nil

	case dayCheckMsg:
		return m, tea.Batch(m.apply(m.state.CheckDailyReset()), checkDayAfter(dayCheckInterval))
	}

	return m, nil
}

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	theme := m.state.Settings().Theme

	switch {
	case key.Matches(msg, k.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, k.Toggle):
		return m, m.apply(m.state.Toggle())
	case key.Matches(msg, k.Reset):
		return m, m.apply(m.state.Reset())
	case key.Matches(msg, k.Skip):
		return m, m.apply(m.state.Skip())
	case key.Matches(msg, k.Focus):
		return m, m.apply(m.state.SetMode(domain.ModeFocus))
	case key.Matches(msg, k.Break):
		return m, m.apply(m.state.SetMode(domain.ModeShortBreak))

	case key.Matches(msg, k.Companion):
		if m.channel.IsOpen() {
			return m, m.closeCompanion()
		}
		return m, m.openCompanion()

	case key.Matches(msg, k.Music):
		return m, m.apply(m.state.ToggleMedia())
	case key.Matches(msg, k.NextTrack):
		return m, m.apply(m.state.NextTrack())
	case key.Matches(msg, k.PrevTrack):
		return m, m.apply(m.state.PrevTrack())

	case key.Matches(msg, k.AddTask):
		return m, m.overlays.Push(overlay.NewTaskPrompt(theme))
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.state.Tasks())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, k.BindTask):
		if task, ok := m.selectedTask(); ok {
			return m, m.apply(m.state.BindTask(task.ID))
		}
		return m, nil
	case key.Matches(msg, k.DeleteTask):
		if task, ok := m.selectedTask(); ok {
			dialog := overlay.NewConfirmDialog("Delete Task", "Delete \""+task.Text+"\"?", task.ID, theme)
			return m, m.overlays.Push(dialog)
		}
		return m, nil

	case key.Matches(msg, k.Theme):
		cmd := m.apply(m.state.SetTheme(domain.NextTheme(theme)))
		return m, cmd
	case key.Matches(msg, k.Durations):
		settings := m.state.Settings()
		form := overlay.NewDurationForm(settings.FocusDuration, settings.ShortBreakDuration, theme)
		return m, m.overlays.Push(form)
	case key.Matches(msg, k.SavePreset):
		return m, m.apply(m.state.SavePreset())
	case key.Matches(msg, k.NextPreset):
		name, ok := m.state.NextPresetName(m.presetName)
		if !ok {
			return m, m.notify(domain.NotifyInfo, "No presets saved yet")
		}
		m.presetName = name
		return m, m.apply(m.state.ApplyPreset(name))

	case key.Matches(msg, k.Export):
		return m, m.exportCmd()
	case key.Matches(msg, k.Import):
		prompt := overlay.NewPathPrompt(importKey, "Import Data", m.defaultArchivePath(), theme)
		return m, m.overlays.Push(prompt)

	case key.Matches(msg, k.Help):
		return m, m.overlays.Push(overlay.NewHelpOverlay(m.keys, theme))
	}

	return m, nil
}

// handleSelection acts on an answered dialog
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case overlay.KeyTask:
		input, ok := msg.Value.(overlay.TaskInput)
		if !ok {
			return m, nil
		}
		return m, m.apply(m.state.AddTask(input.Text, input.Priority))

	case overlay.KeyConfirm:
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed {
			return m, nil
		}
		id, ok := result.Subject.(int64)
		if !ok {
			return m, nil
		}
		cmd := m.apply(m.state.DeleteTask(id))
		if n := len(m.state.Tasks()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, cmd

	case overlay.KeyDuration:
		input, ok := msg.Value.(overlay.DurationInput)
		if !ok {
			return m, nil
		}
		return m, m.apply(m.state.UpdateSettings(input.FocusMinutes, input.ShortBreakMinutes))

	case importKey:
		path, ok := msg.Value.(string)
		if !ok {
			return m, nil
		}
		return m, m.importCmd(path)
	}

	return m, nil
}

func (m Model) selectedTask() (domain.Task, bool) {
	tasks := m.state.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.cursor], true
}

// applyRemote overwrites the local copy of a record another window or a
// CLI command wrote. Nothing is persisted back.
func (m *Model) applyRemote(change store.Change) tea.Cmd {
	switch change.Key {
	case store.KeyTimerState:
		state, err := store.DecodeTimerState(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid timer snapshot", "error", err)
			return nil
		}
		m.state.ApplyRemoteTimer(state)
	case store.KeyMediaState:
		media, err := store.DecodeMediaState(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid media snapshot", "error", err)
			return nil
		}
		m.state.ApplyRemoteMedia(media)
	case store.KeySettings:
		settings, err := store.DecodeSettings(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid settings", "error", err)
			return nil
		}
		return m.apply(m.state.ApplyRemoteSettings(settings))
	case store.KeyStats:
		stats, err := store.DecodeStats(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid stats", "error", err)
			return nil
		}
		m.state.ApplyRemoteStats(stats)
	case store.KeyTasks:
		tasks, err := store.DecodeTasks(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid tasks", "error", err)
			return nil
		}
		cmd := m.apply(m.state.ApplyRemoteTasks(tasks))
		m.cursor = max(min(m.cursor, len(m.state.Tasks())-1), 0)
		return cmd
	case store.KeyPresets:
		presets, err := store.DecodePresets(change.Value)
		if err != nil {
			m.logger.Warn("ignoring invalid presets", "error", err)
			return nil
		}
		m.state.ApplyRemotePresets(presets)
	default:
		m.logger.Debug("store change ignored", "key", change.Key)
	}
	return nil
}

func (m *Model) shutdown() {
	ctx, cancel := shortContext()
	defer cancel()
	if err := m.channel.Shutdown(ctx); err != nil {
		m.logger.Warn("closing companion on exit failed", "error", err)
	}
}
