package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) remindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send duty reminders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "now",
		Short: "Run a single reminder scan immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			sent, err := c.app.ReminderScheduler().ScanNow(cmd.Context())
			if err != nil {
				return err
			}
			if sent == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no reminders due")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminders\n", sent)
			}
			return nil
		},
	})
	return cmd
}
