package main

import (
	stderrors "errors"
	"fmt"
	"greeter-proxy/domain"
	"greeter-proxy/errors"
	"greeter-proxy/internal"
	"greeter-proxy/services"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Opener lazily provides the admin service and its cleanup.
type Opener func() (services.IAdminService, func(), error)

// Inspector dumps the raw key space under a prefix.
type Inspector func(prefix string) ([]internal.InspectRow, error)

var (
	success = color.New(color.FgGreen).Render
	warning = color.New(color.FgYellow).Render
)

func newRootCmd(open Opener, inspect Inspector) *cobra.Command {
	root := &cobra.Command{
		Use:           "greeter-admin",
		Short:         "Manage the users and conversation state of the greeter proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		addCmd(open),
		listCmd(open),
		removeCmd(open),
		statusCmd(open),
		resetCmd(open),
		inspectCmd(inspect),
	)
	return root
}

// withAdmin opens the service for the duration of fn.
func withAdmin(open Opener, fn func(admin services.IAdminService) error) error {
	admin, closeFn, err := open()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(admin)
}

func addCmd(open Opener) *cobra.Command {
	var phone, role, name string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a greeter or an evaluator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(open, func(admin services.IAdminService) error {
				canonical, err := admin.AddUser(phone, role, name)
				if err != nil {
					return err
				}
				parsed, _ := domain.ParseRole(role)
				fmt.Fprintln(cmd.OutOrStdout(),
					success(fmt.Sprintf("Successfully added %s: %s (%s)", parsed, name, canonical)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "Phone number, E.164 or national form")
	cmd.Flags().StringVarP(&role, "role", "r", "", "Role: greeter or evaluator")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func listCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(open, func(admin services.IAdminService) error {
				users, err := admin.ListUsers()
				if err != nil {
					return err
				}
				if len(users) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No users found")
					return nil
				}
				renderUsers(cmd.OutOrStdout(), users)
				return nil
			})
		},
	}
}

func removeCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <identifier>",
		Short: "Remove a user by phone number or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := args[0]
			out := cmd.OutOrStdout()
			return withAdmin(open, func(admin services.IAdminService) error {
				removed, candidates, err := admin.RemoveUser(identifier)
				switch {
				case stderrors.Is(err, errors.ErrUserNotFound):
					fmt.Fprintln(out, warning(fmt.Sprintf("User not found: %q", identifier)))
					return nil
				case stderrors.Is(err, errors.ErrAmbiguousIdentifier):
					fmt.Fprintln(out, warning(fmt.Sprintf("Ambiguous request. Multiple users found with name %q:", identifier)))
					renderUsers(out, candidates)
					fmt.Fprintln(out, "Please run the command again using the specific Phone Number.")
					return nil
				case err != nil:
					return err
				}
				fmt.Fprintln(out, success(fmt.Sprintf("Removed %s: %s (%s)", removed.Role, removed.Name, removed.PhoneNumber)))
				return nil
			})
		},
	}
}

func statusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which evaluator greeter replies are routed to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(open, func(admin services.IAdminService) error {
				status, err := admin.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !status.Active {
					fmt.Fprintln(out, warning("System Status: Idle (No active conversation)"))
					return nil
				}
				fmt.Fprintln(out, success("System Status: Active Conversation"))
				fmt.Fprintf(out, "   Routing Greeter replies to: %s (%s)\n", status.DisplayName, status.PhoneNumber)
				return nil
			})
		},
	}
}

func resetCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the active evaluator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(open, func(admin services.IAdminService) error {
				if err := admin.ResetConversation(); err != nil {
					return fmt.Errorf("reset failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), success("Conversation state reset. System is now Idle."))
				return nil
			})
		},
	}
}

func inspectCmd(inspect Inspector) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the database keys, read-only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := inspect(prefix)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Key", "Type", "Detail"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetTablePadding("\t")
			for _, row := range rows {
				table.Append([]string{row.Key, row.Kind, row.Detail})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only keys starting with this prefix")
	return cmd
}

func renderUsers(w io.Writer, users []domain.User) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Phone", "Role", "Name"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, user := range users {
		table.Append([]string{user.ID.String(), user.PhoneNumber, user.Role.String(), user.Name})
	}
	table.Render()
}
