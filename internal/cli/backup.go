package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage encrypted snapshot backups",
	}
	cmd.AddCommand(
		c.backupNowCommand(),
		c.backupListCommand(),
		c.backupRestoreCommand(),
		c.backupCleanupCommand(),
		c.backupStatusCommand(),
	)
	return cmd
}

func (c *cli) backupStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the backup manager state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := c.app.Backups.Status()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "state:        %s\n", status.State)
			if status.LastBackup != nil {
				fmt.Fprintf(w, "last backup:  %s\n", status.LastBackup.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(w, "last key:     %s\n", status.LastKey)
			}
			if status.Error != "" {
				fmt.Fprintf(w, "last error:   %s\n", status.Error)
			}
			return nil
		},
	}
}

func (c *cli) backupNowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Upload an encrypted snapshot immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.app.Backups.RunNow(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup uploaded as %s\n", key)
			return nil
		},
	}
}

func (c *cli) backupListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := c.app.Backups.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no backups")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-48s  %10s  %s\n", "KEY", "BYTES", "MODIFIED")
			for _, item := range items {
				fmt.Fprintf(w, "%-48s  %10d  %s\n", item.Key, item.Size, item.LastModified.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func (c *cli) backupRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [key]",
		Short: "Restore a backup into the live store",
		Long:  "Restore downloads and decrypts a backup, then imports it. Without a key (or with \"latest\") the newest backup is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := "latest"
			if len(args) == 1 {
				key = args[0]
			}
			if err := c.app.Backups.Restore(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup restored")
			return nil
		},
	}
}

func (c *cli) backupCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete backups past the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := c.app.Backups.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d backups\n", deleted)
			return nil
		},
	}
}
