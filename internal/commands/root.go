package commands

import (
	"github.com/spf13/cobra"

	"github.com/twoloonies/loonies/internal/buildinfo"
	"github.com/twoloonies/loonies/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "loonies",
		Short:   "Monthly income and expense entry",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to loonies.yaml")

	rootCmd.AddCommand(
		newInitCommand(),
		newFieldsCommand(&configPath),
		newSetCommand(&configPath),
		newUnsetCommand(&configPath),
		newAddFieldCommand(&configPath),
		newRemoveFieldCommand(&configPath),
		newSummaryCommand(&configPath),
		newSubmitCommand(&configPath),
		newClearCommand(&configPath),
	)

	return rootCmd
}
