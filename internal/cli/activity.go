package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danli429/team-scheduling-system/internal/model"
	"github.com/danli429/team-scheduling-system/internal/recurrence"
)

func (c *cli) activityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage recurring activities",
	}
	cmd.AddCommand(
		c.activityAddCommand(),
		c.activityListCommand(),
		c.activityUpdateCommand(),
		c.activityRemoveCommand(),
	)
	return cmd
}

func (c *cli) activityAddCommand() *cobra.Command {
	var (
		name, description, unit string
		frequency               int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := recurrence.ParseUnit(unit)
			if err != nil {
				return err
			}
			a, err := c.app.Store.AddActivity(name, description, frequency, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added activity %s (%s), every %d %s\n", a.Name, a.ID, a.Frequency, a.FrequencyUnit)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "activity name (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the duty involves")
	cmd.Flags().IntVar(&frequency, "frequency", 1, "how many units between occurrences")
	cmd.Flags().StringVar(&unit, "unit", "days", "days, weeks or months")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) activityListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities := c.app.Store.Activities()
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no activities")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-36s  %-20s  %-14s  %s\n", "ID", "NAME", "EVERY", "DESCRIPTION")
			for _, a := range activities {
				every := fmt.Sprintf("%d %s", a.Frequency, a.FrequencyUnit)
				fmt.Fprintf(w, "%-36s  %-20s  %-14s  %s\n", a.ID, a.Name, every, a.Description)
			}
			return nil
		},
	}
}

func (c *cli) activityUpdateCommand() *cobra.Command {
	var (
		name, description, unit string
		frequency               int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an activity's name, description or cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.ActivityPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("frequency") {
				patch.Frequency = &frequency
			}
			if cmd.Flags().Changed("unit") {
				u, err := recurrence.ParseUnit(unit)
				if err != nil {
					return err
				}
				patch.FrequencyUnit = &u
			}
			if patch.Name == nil && patch.Description == nil && patch.Frequency == nil && patch.FrequencyUnit == nil {
				return fmt.Errorf("nothing to update: pass --name, --description, --frequency or --unit")
			}

			a, err := c.app.Store.UpdateActivity(args[0], patch)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("activity %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated activity %s\n", a.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().IntVar(&frequency, "frequency", 0, "new frequency")
	cmd.Flags().StringVar(&unit, "unit", "", "days, weeks or months")
	return cmd
}

func (c *cli) activityRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Store.DeleteActivity(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed activity %s\n", args[0])
			return nil
		},
	}
}
