package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder and backup daemons until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			sched := c.app.ReminderScheduler()
			sched.Start(cmd.Context())
			defer sched.Stop()

			if err := c.app.Backups.Start(); err != nil {
				return err
			}
			defer c.app.Backups.Stop()

			c.app.Log.Info("teamsched running",
				"db", c.app.Config.DBPath,
				"scan_interval", c.app.Config.ScanInterval,
			)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			fmt.Fprintln(cmd.OutOrStdout(), "\nshutting down...")
			return nil
		},
	}
}
