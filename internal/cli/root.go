// Package cli defines the teamsched command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/danli429/team-scheduling-system/internal/app"
	"github.com/danli429/team-scheduling-system/internal/config"
	"github.com/danli429/team-scheduling-system/internal/logging"
)

type cli struct {
	app *app.App
}

// Root assembles the command tree. Configuration is loaded and the store
// opened once per invocation, before any subcommand runs.
func Root() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "teamsched",
		Short:         "Team duty scheduling from the command line",
		Long:          "teamsched keeps a team roster, generates duty schedules and reminds members before their turn comes up.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.Setup(cfg.LogLevel, cfg.LogFormat)

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.AddCommand(
		c.memberCommand(),
		c.activityCommand(),
		c.generateCommand(),
		c.scheduleCommand(),
		c.settingsCommand(),
		c.remindCommand(),
		c.exportCommand(),
		c.importCommand(),
		c.resetCommand(),
		c.backupCommand(),
		c.serveCommand(),
	)
	return root
}
