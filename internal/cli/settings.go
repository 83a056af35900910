package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danli429/team-scheduling-system/internal/model"
)

func (c *cli) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change scheduling settings",
	}
	cmd.AddCommand(c.settingsShowCommand(), c.settingsSetCommand())
	return cmd
}

func (c *cli) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.app.Store.Settings()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "algorithm:      %s\n", s.Algorithm)
			fmt.Fprintf(w, "notifications:  %t\n", s.NotificationEnabled)
			fmt.Fprintf(w, "lead days:      %d\n", s.NotificationDays)
			return nil
		},
	}
}

func (c *cli) settingsSetCommand() *cobra.Command {
	var (
		algorithm     string
		notifications bool
		leadDays      int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := c.app.Store.Settings()
			changed := false

			if cmd.Flags().Changed("algorithm") {
				switch model.Algorithm(algorithm) {
				case model.AlgorithmRotation, model.AlgorithmRandom, model.AlgorithmBalanced:
					settings.Algorithm = model.Algorithm(algorithm)
				default:
					return fmt.Errorf("unknown algorithm %q (want rotation, random or balanced)", algorithm)
				}
				changed = true
			}
			if cmd.Flags().Changed("notifications") {
				settings.NotificationEnabled = notifications
				changed = true
			}
			if cmd.Flags().Changed("lead-days") {
				settings.NotificationDays = leadDays
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass --algorithm, --notifications or --lead-days")
			}

			if err := c.app.Store.SetSettings(settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&algorithm, "algorithm", "", "rotation, random or balanced")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "enable or disable reminders")
	cmd.Flags().IntVar(&leadDays, "lead-days", 0, "days before a duty to send its reminder")
	return cmd
}
