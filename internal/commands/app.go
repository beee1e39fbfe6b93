package commands

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/config"
	"github.com/twoloonies/loonies/internal/fields"
	"github.com/twoloonies/loonies/internal/logging"
	"github.com/twoloonies/loonies/internal/persist"
	"github.com/twoloonies/loonies/internal/report"
	"github.com/twoloonies/loonies/internal/storage"
)

// app is everything a command needs once configuration has been resolved.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  storage.Store
	engine *budget.Engine
	styles report.Styles
}

// openApp resolves configuration and loads the saved entries. Relative
// storage and export paths are taken relative to the config file.
func openApp(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(configPath)
	cfg.Storage.Path = relativeTo(base, cfg.Storage.Path)
	cfg.Submission.ExportDir = relativeTo(base, cfg.Submission.ExportDir)

	log := logging.NewWithOutput(cfg.Log, cmd.ErrOrStderr())

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	registry := fields.Default()
	adapter := persist.NewAdapter(store, registry,
		persist.WithKey(cfg.Storage.Key),
		persist.WithLogger(log),
	)
	engine := budget.New(
		budget.WithRegistry(registry),
		budget.WithPersister(adapter),
		budget.WithLogger(log),
	)

	return &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		engine: engine,
		styles: report.StylesFor(cmd.OutOrStdout()),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp wraps a command body with openApp and Close.
func withApp(configPath *string, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, *configPath)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

func relativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
