package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/flow"
	"github.com/twoloonies/loonies/internal/report"
	"github.com/twoloonies/loonies/internal/submit"
)

func newSubmitCommand(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Review and deliver the monthly entries",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, _ []string) error {
			var s flow.Submission
			if err := s.Request(a.engine); err != nil {
				return errors.New(flow.Message(err))
			}

			preview, err := s.Preview(a.engine)
			if err != nil {
				return errors.New(flow.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Preview(preview, a.styles))

			if !yes {
				ok, err := confirm(cmd, "Submit these entries?")
				if err != nil {
					return err
				}
				if !ok {
					s.Cancel()
					fmt.Fprintln(cmd.OutOrStdout(), "Submission cancelled")
					return nil
				}
			}

			sink, closeSink, err := submit.New(a.cfg.Submission, a.log)
			if err != nil {
				return fmt.Errorf("opening %s sink: %w", a.cfg.Submission.Sink, err)
			}
			defer closeSink()

			doc, err := s.Confirm(cmd.Context(), a.engine, sink)
			if err != nil {
				if errors.Is(err, budget.ErrNoEntries) {
					return errors.New(flow.Message(err))
				}
				return fmt.Errorf("delivering submission: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d entries to %s\n", len(doc.Entries), a.cfg.Submission.Sink)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
