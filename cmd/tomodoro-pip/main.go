// Package main is the tomodoro companion pane. The main window launches it
// in a tmux split with --socket pointing at its listener and the store flags
// it resolved itself.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/riordanpawley/tomodoro/internal/config"
	"github.com/riordanpawley/tomodoro/internal/logging"
	"github.com/riordanpawley/tomodoro/internal/pip"
	"github.com/riordanpawley/tomodoro/internal/services/companion"
	"github.com/riordanpawley/tomodoro/internal/store"
)

func main() {
	fs := pflag.NewFlagSet("tomodoro-pip", pflag.ContinueOnError)
	socket := fs.String("socket", "", "socket the main window listens on")
	var flags config.CompanionFlags
	flags.Bind(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if *socket == "" {
		fmt.Fprintln(os.Stderr, "tomodoro-pip is started by tomodoro; --socket is required")
		os.Exit(2)
	}

	if err := run(*socket, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(socket string, flags config.CompanionFlags) error {
	cfg, err := flags.Resolve()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.Log, "tomodoro-pip")
	if err != nil {
		return err
	}
	defer closer.Close()

	records, err := store.OpenFileStore(cfg.Store.Dir, cfg.Store.Namespace, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer records.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Companion.ConnectTimeout())
	client, err := companion.Dial(ctx, socket, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to tomodoro: %w", err)
	}
	defer client.Close()

	model := pip.New(pip.Options{Link: client, Store: records, Logger: logger})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
