package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
)

func newLoginCommand(opts *rootOptions) *cobra.Command {
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in as the platform admin or as a brand",
	}
	login.AddCommand(
		newLoginRoleCommand(opts, models.RoleAdmin),
		newLoginRoleCommand(opts, models.RoleBrand),
	)
	return login
}

func newLoginRoleCommand(opts *rootOptions, role string) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   role,
		Short: fmt.Sprintf("Log in with %s credentials", role),
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			var err error
			if email, err = prompt(cmd, "Email", email); err != nil {
				return err
			}
			if password, err = prompt(cmd, "Password", password); err != nil {
				return err
			}

			creds := models.Credentials{Identifier: email, Password: password}
			login := a.Dashboard.AdminLogin
			if role == models.RoleBrand {
				login = a.Dashboard.BrandLogin
			}

			resp, err := login(cmd.Context(), creds)
			if err != nil {
				return err
			}

			info, err := a.Dashboard.Session().Info(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd, opts)
			if p.format != outputTable {
				return p.print(info, nil)
			}
			message := resp.Message
			if message == "" {
				message = "Login successful"
			}
			return p.message(fmt.Sprintf("%s. Signed in as %s (%s)", message, info.UserName, info.Role))
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password, prompted when empty")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			if err := a.Dashboard.Logout(cmd.Context()); err != nil {
				return err
			}
			return newPrinter(cmd, opts).message("Logged out")
		}),
	}
}

func newWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			info, err := a.Dashboard.Session().Info(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd, opts)
			if !info.LoggedIn && p.format == outputTable {
				return p.message("Not logged in")
			}
			return p.print(info, func() table {
				return table{
					headers: []string{"ROLE", "NAME", "BRAND ID", "TOKEN"},
					rows:    [][]string{{info.Role, info.UserName, info.BrandID, fmt.Sprint(info.HasToken)}},
				}
			})
		}),
	}
}

// isBrand reports whether the session belongs to a brand account
func isBrand(cmd *cobra.Command, a *app) (bool, error) {
	role, err := a.Dashboard.Session().Role(cmd.Context())
	if err != nil {
		return false, err
	}
	return role == models.RoleBrand, nil
}
