package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twoloonies/loonies/internal/config"
)

func newInitCommand() *cobra.Command {
	var backend string
	var sink string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default loonies.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, backend, sink); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized loonies at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "storage", config.BackendFile, "storage backend: memory, file or sqlite")
	cmd.Flags().StringVar(&sink, "sink", config.SinkLog, "submission sink: log, file or amqp")

	return cmd
}

func runInit(dir, backend, sink string) error {
	cfgPath := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Submission.Sink = sink
	if backend == config.BackendSQLite {
		cfg.Storage.Path = filepath.Join(".loonies", "loonies.db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dirs := []string{cfg.Submission.ExportDir}
	switch backend {
	case config.BackendFile:
		dirs = append(dirs, cfg.Storage.Path)
	case config.BackendSQLite:
		dirs = append(dirs, filepath.Dir(cfg.Storage.Path))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := ".loonies/\nexports/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
