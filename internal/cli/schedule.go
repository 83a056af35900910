package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danli429/team-scheduling-system/internal/model"
)

func (c *cli) generateCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh duty schedule",
		Long:  "Generate wipes the current schedule and plans every activity across the window using the configured assignment algorithm.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := model.Today()
			if from != "" {
				var err error
				if start, err = model.ParseDate(from); err != nil {
					return err
				}
			}
			end := start.AddDays(29)
			if to != "" {
				var err error
				if end, err = model.ParseDate(to); err != nil {
					return err
				}
			}
			if start.After(end.Time) {
				return fmt.Errorf("start %s is after end %s", start, end)
			}

			entries, err := c.app.Generator.Generate(start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d assignments from %s to %s\n", len(entries), start, end)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD inclusive (default: 29 days after start)")
	return cmd
}

func (c *cli) scheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect the duty schedule",
	}
	cmd.AddCommand(c.scheduleListCommand())
	return cmd
}

func (c *cli) scheduleListCommand() *cobra.Command {
	var (
		from, to string
		upcoming int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []model.ScheduleEntry
			switch {
			case cmd.Flags().Changed("upcoming"):
				entries = c.app.Store.UpcomingSchedules(upcoming)
			case from != "" || to != "":
				start := model.NewDate(1, 1, 1)
				end := model.NewDate(9999, 12, 31)
				var err error
				if from != "" {
					if start, err = model.ParseDate(from); err != nil {
						return err
					}
				}
				if to != "" {
					if end, err = model.ParseDate(to); err != nil {
						return err
					}
				}
				entries = c.app.Store.SchedulesInRange(start, end)
			default:
				entries = c.app.Store.Schedules()
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no schedule entries")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s  %-20s  %-20s  %s\n", "DATE", "ACTIVITY", "MEMBER", "NOTIFIED")
			for _, e := range entries {
				notified := "no"
				if e.Notified {
					notified = "yes"
				}
				fmt.Fprintf(w, "%-12s  %-20s  %-20s  %s\n", e.Date, e.ActivityName, e.MemberName, notified)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "only entries on or after this date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "only entries on or before this date, YYYY-MM-DD")
	cmd.Flags().IntVar(&upcoming, "upcoming", 0, "show the next N entries from today (0 shows all upcoming)")
	return cmd
}
