// Package cli implements the non-interactive tomodoro subcommands. They
// read and write the same store the windows use.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/riordanpawley/tomodoro/internal/archive"
	"github.com/riordanpawley/tomodoro/internal/config"
	"github.com/riordanpawley/tomodoro/internal/core/appstate"
	"github.com/riordanpawley/tomodoro/internal/domain"
	"github.com/riordanpawley/tomodoro/internal/services/diagnostics"
	"github.com/riordanpawley/tomodoro/internal/store"
	"github.com/riordanpawley/tomodoro/internal/ui/render"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config *config.Config
	Store  store.Store
	Mirror *store.Mirror
	Logger *slog.Logger
	Out    io.Writer
	Now    func() time.Time
}

// NewDependencies opens the configured file store
func NewDependencies(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Dependencies, error) {
	fs, err := store.OpenFileStore(cfg.Store.Dir, cfg.Store.Namespace, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &Dependencies{
		Config: cfg,
		Store:  fs,
		Mirror: store.NewMirror(fs),
		Logger: logger,
		Out:    out,
		Now:    time.Now,
	}, nil
}

// Close releases the store
func (d *Dependencies) Close() error {
	return d.Store.Close()
}

// records loads the durable records, falling back to first-launch defaults
func (d *Dependencies) records() (domain.Records, error) {
	defaults := appstate.New(d.Now).Records()
	records, err := d.Mirror.LoadRecords(defaults)
	if err != nil {
		return defaults, fmt.Errorf("failed to load saved data: %w", err)
	}
	return records, nil
}

// StatusCommand prints the last synced timer and today's stats
func StatusCommand(deps *Dependencies) error {
	records, err := deps.records()
	if err != nil {
		return err
	}
	timer, ok, err := deps.Mirror.LoadTimer()
	if err != nil {
		return fmt.Errorf("failed to read timer state: %w", err)
	}
	if !ok {
		timer = domain.DefaultTimerState()
		timer.TimeRemaining = records.Settings.DurationFor(domain.ModeFocus)
		timer.TotalTime = timer.TimeRemaining
	}

	frame := render.Project(timer)
	state := "stopped"
	switch {
	case timer.IsRunning:
		state = "running"
	case timer.IsPaused:
		state = "paused"
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tSTATE\tREMAINING\tCOMPANION")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", frame.Label, state, frame.Clock, onOff(timer.PipActive))
	w.Flush()

	stats := records.Stats
	fmt.Fprintf(deps.Out, "\nToday: %d  Completed: %d  Focus time: %dm  Streak: %d\n",
		stats.TodayPomodoros, stats.CompletedPomodoros, stats.TotalTime, stats.CurrentStreak)
	fmt.Fprintf(deps.Out, "Sessions: %d min focus / %d min break  Theme: %s\n",
		records.Settings.FocusDuration, records.Settings.ShortBreakDuration, records.Settings.Theme)
	return nil
}

// TasksCommand lists the saved tasks by priority
func TasksCommand(deps *Dependencies) error {
	records, err := deps.records()
	if err != nil {
		return err
	}
	if len(records.Tasks) == 0 {
		fmt.Fprintln(deps.Out, "No tasks")
		return nil
	}

	tasks := append([]domain.Task(nil), records.Tasks...)
	domain.SortTasks(tasks)

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tDONE\tSPENT\tTASK")
	for _, task := range tasks {
		text := task.Text
		// Truncate text if too long
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%dm\t%s\n", task.Priority.Label(), yesNo(task.Completed), task.TimeSpent, text)
	}
	return w.Flush()
}

// ExportCommand writes the archive into dir
func ExportCommand(deps *Dependencies, dir string) error {
	records, err := deps.records()
	if err != nil {
		return err
	}
	path, err := archive.ExportFile(dir, records)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	deps.Logger.Info("data exported", "path", path)
	fmt.Fprintf(deps.Out, "✓ Data exported to %s\n", path)
	return nil
}

// ImportCommand replaces the saved records with an archive
func ImportCommand(deps *Dependencies, path string) error {
	current, err := deps.records()
	if err != nil {
		return err
	}
	imported, err := archive.ImportFile(path, current)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	if err := deps.Mirror.SaveRecords(imported); err != nil {
		return fmt.Errorf("failed to save imported data: %w", err)
	}
	deps.Logger.Info("data imported", "path", path, "tasks", len(imported.Tasks))
	fmt.Fprintf(deps.Out, "✓ Data imported from %s\n", path)
	fmt.Fprintln(deps.Out, "  A running tomodoro switches to it immediately.")
	return nil
}

// ErrUnhealthy is returned by DoctorCommand when a check failed outright
var ErrUnhealthy = errors.New("environment check failed")

// DoctorCommand prints the environment diagnostics
func DoctorCommand(ctx context.Context, deps *Dependencies, svc *diagnostics.Service) error {
	report := svc.Collect(ctx)
	fmt.Fprint(deps.Out, diagnostics.FormatReport(report))
	deps.Logger.Debug("doctor finished", "state", report.OverallState, "warnings", len(report.Warnings))
	if report.OverallState == diagnostics.HealthCritical {
		return ErrUnhealthy
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "open"
	}
	return "closed"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintUsage prints CLI usage information
func PrintUsage(w io.Writer) {
	usage := `Usage: tomodoro [flags] [command] [arguments]

Commands:
  (no command)         Start the timer
  status               Show the last synced timer and today's stats
  tasks                List saved tasks
  export [dir]         Write tomodoro_data.json into dir (default: current directory)
  import <path>        Replace saved data with an exported archive
  doctor               Check the store, tmux and the music player
  help                 Show this help message

Flags:
  -c, --config <path>  Config file (.json or .yaml)
      --log-level <lvl>  Override the configured log level

Examples:
  tomodoro                          # Start the timer
  tomodoro export ~/backup          # Back up tasks, stats and presets
  tomodoro import ~/backup/tomodoro_data.json
`
	fmt.Fprint(w, usage)
}
