// Package main provides the entry point for the tomodoro focus timer.
//
// tomodoro is a Pomodoro timer for the terminal. Pressing p inside tmux
// opens a companion pane (tomodoro-pip) that mirrors the countdown and the
// music player and relays its keys back to this window.
//
// Usage:
//
//	tomodoro [flags] [command]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/riordanpawley/tomodoro/internal/app"
	"github.com/riordanpawley/tomodoro/internal/cli"
	"github.com/riordanpawley/tomodoro/internal/config"
	"github.com/riordanpawley/tomodoro/internal/logging"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/services/diagnostics"
	"github.com/riordanpawley/tomodoro/internal/services/media"
	"github.com/riordanpawley/tomodoro/internal/services/tmux"
	"github.com/riordanpawley/tomodoro/internal/store"
)

func main() {
	flags := pflag.NewFlagSet("tomodoro", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "config file (.json or .yaml)")
	logLevel := flags.String("log-level", "", "override the configured log level")
	flags.Usage = func() { cli.PrintUsage(os.Stderr) }
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, closer, err := logging.Open(cfg.Log, "tomodoro")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	args := flags.Args()
	if len(args) > 0 {
		if err := runCommand(cfg, logger, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(cfg, *configPath, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(cfg *config.Config, logger *slog.Logger, args []string) error {
	if args[0] == "help" {
		cli.PrintUsage(os.Stdout)
		return nil
	}

	deps, err := cli.NewDependencies(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer deps.Close()

	switch args[0] {
	case "status":
		return cli.StatusCommand(deps)
	case "tasks":
		return cli.TasksCommand(deps)
	case "export":
		dir := "."
		if len(args) > 1 {
			dir = args[1]
		}
		return cli.ExportCommand(deps, dir)
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import needs the archive path")
		}
		return cli.ImportCommand(deps, args[1])
	case "doctor":
		opts := diagnostics.Options{
			Tmux:             tmux.NewClient(&tmux.ExecRunner{}, logger),
			MediaOrigin:      cfg.Media.Origin,
			StoreDir:         cfg.Store.Dir,
			CompanionCommand: cfg.Companion.Command,
		}
		if !cfg.Media.Disabled {
			opts.Media = media.NewProber(cfg.Media.Origin, cfg.Media.Timeout())
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Companion.ConnectTimeout()+cfg.Media.Timeout())
		defer cancel()
		return cli.DoctorCommand(ctx, deps, diagnostics.NewService(opts))
	default:
		cli.PrintUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runTUI(cfg *config.Config, configPath string, logger *slog.Logger) error {
	fs, err := store.OpenFileStore(cfg.Store.Dir, cfg.Store.Namespace, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer fs.Close()

	dataDir, err := os.Getwd()
	if err != nil {
		dataDir = "."
	}

	tmuxClient := tmux.NewClient(&tmux.ExecRunner{}, logger)
	launcher := companion.NewTmuxLauncher(tmuxClient, companion.PaneOptions{
		Command: cfg.Companion.Command,
		Width:   cfg.Companion.Width,
		Dir:     dataDir,
		Args:    cfg.CompanionArgs(configPath),
	})
	channel := companion.NewChannel(launcher, companion.Options{
		SocketPath:     cfg.Companion.Socket(os.Getpid()),
		ConnectTimeout: cfg.Companion.ConnectTimeout(),
		Logger:         logger,
	})
	defer channel.Shutdown(context.Background())

	var transport media.Transport
	var prober *media.Prober
	if !cfg.Media.Disabled {
		transport = media.NewHTTPTransport(cfg.Media.Origin, cfg.Media.Endpoint, cfg.Media.Timeout())
		prober = media.NewProber(cfg.Media.Origin, cfg.Media.Timeout())
	}

	bell, bellCloser := app.TerminalBell()
	defer bellCloser.Close()

	model := app.New(app.Options{
		Config:  cfg,
		Store:   fs,
		Channel: channel,
		Media:   media.NewController(transport, logger, cfg.Media.Timeout()),
		Prober:  prober,
		Logger:  logger,
		Bell:    bell,
		DataDir: dataDir,
	})

	logger.Info("tomodoro starting", "store", cfg.Store.Dir, "writer", fs.Writer())
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
