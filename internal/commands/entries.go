package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twoloonies/loonies/internal/budget"
	"github.com/twoloonies/loonies/internal/flow"
	"github.com/twoloonies/loonies/internal/model"
	"github.com/twoloonies/loonies/internal/report"
)

func newFieldsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List income and expense fields with their values",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.Fields(a.engine, a.styles))
			return nil
		}),
	}
}

func newSetCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <amount>",
		Short: "Set the amount of a field",
		Long:  "Set the amount of a field. Bi-weekly fields take the per-cheque amount.",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, args []string) error {
			def, ok := a.engine.Field(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", budget.ErrUnknownField, args[0])
			}
			current, _ := a.engine.Value(def.Key)

			var modal flow.EditModal
			modal.Open(def, current)
			modal.SetDraft(args[1])
			added, err := modal.Confirm(a.engine)
			if err != nil {
				return errors.New(flow.Message(err))
			}

			verb := "Updated"
			if added {
				verb = "Added"
			}
			raw, _ := a.engine.Value(def.Key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s monthly\n", verb, def.Label, report.Money(budget.MonthlyEquivalent(def, raw)))
			return nil
		}),
	}
}

func newUnsetCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <field>",
		Short: "Clear the amount of a field",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.engine.Unset(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", args[0])
			return nil
		}),
	}
}

func newAddFieldCommand(configPath *string) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "add-field <income|expense> <name>",
		Short: "Add a custom monthly field",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, args []string) error {
			cat, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}

			var modal flow.CustomFieldModal
			modal.Open(cat)
			modal.SetName(args[1])
			modal.SetAmount(amount)
			def, err := modal.Submit(a.engine)
			if err != nil {
				return errors.New(modal.Message())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s field %s (%s)\n", cat, def.Label, def.Key)
			return nil
		}),
	}

	cmd.Flags().StringVar(&amount, "amount", "", "initial monthly amount")

	return cmd
}

func newRemoveFieldCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-field <income|expense> <key>",
		Short: "Remove a custom field and its value",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, args []string) error {
			cat, err := model.ParseCategory(args[0])
			if err != nil {
				return err
			}

			var label string
			for _, f := range a.engine.CustomFields(cat) {
				if f.Key == args[1] {
					label = f.Label
				}
			}
			if label == "" {
				return fmt.Errorf("no custom %s field with key %q", cat, args[1])
			}

			a.engine.RemoveCustomField(cat, args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s field %s\n", cat, label)
			return nil
		}),
	}
}

func newSummaryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show monthly totals and ratios",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.Summary(a.engine.Summary(), a.styles))
			return nil
		}),
	}
}

func newClearCommand(configPath *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all entries and custom fields",
		Args:  cobra.NoArgs,
		RunE: withApp(configPath, func(cmd *cobra.Command, a *app, _ []string) error {
			if !yes {
				ok, err := confirm(cmd, "Clear all entries and custom fields?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared")
					return nil
				}
			}
			a.engine.ClearAll()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all entries")
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
