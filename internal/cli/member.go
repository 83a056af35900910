package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danli429/team-scheduling-system/internal/model"
)

func (c *cli) memberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage roster members",
	}
	cmd.AddCommand(
		c.memberAddCommand(),
		c.memberListCommand(),
		c.memberUpdateCommand(),
		c.memberRemoveCommand(),
	)
	return cmd
}

func (c *cli) memberAddCommand() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.app.Store.AddMember(name, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added member %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "member name (required)")
	cmd.Flags().StringVar(&email, "email", "", "member email")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) memberListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members := c.app.Store.Members()
			if len(members) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no members")
				return nil
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-36s  %-20s  %-24s  %-8s  %s\n", "ID", "NAME", "EMAIL", "STATUS", "DUTIES")
			for _, m := range members {
				fmt.Fprintf(w, "%-36s  %-20s  %-24s  %-8s  %d\n", m.ID, m.Name, m.Email, m.Status, m.ParticipationCount)
			}
			return nil
		},
	}
}

func (c *cli) memberUpdateCommand() *cobra.Command {
	var name, email, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a member's name, email or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.MemberPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("status") {
				s := model.MemberStatus(status)
				patch.Status = &s
			}
			if patch.Name == nil && patch.Email == nil && patch.Status == nil {
				return fmt.Errorf("nothing to update: pass --name, --email or --status")
			}

			m, err := c.app.Store.UpdateMember(args[0], patch)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("member %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated member %s\n", m.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")
	return cmd
}

func (c *cli) memberRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a member from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Store.DeleteMember(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed member %s\n", args[0])
			return nil
		},
	}
}
