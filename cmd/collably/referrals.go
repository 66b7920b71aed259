package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

func newReferralsCommand(opts *rootOptions) *cobra.Command {
	referrals := &cobra.Command{
		Use:   "referrals",
		Short: "View brand referral links and the users they brought in",
	}
	referrals.AddCommand(
		newReferralsListCommand(opts),
		newReferralsUsersCommand(opts),
		newReferralsUserCommand(opts),
	)
	return referrals
}

func newReferralsListCommand(opts *rootOptions) *cobra.Command {
	var (
		list    listFlags
		brandID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List referrals; admins see every brand unless --brand-id is set",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			brandSession, err := isBrand(cmd, a)
			if err != nil {
				return err
			}

			var referrals []models.Referral
			if brandSession || brandID != "" {
				referrals, err = a.Dashboard.FetchBrandReferrals(cmd.Context(), brandID)
			} else {
				referrals, err = a.Dashboard.FetchAllBrandReferrals(cmd.Context())
			}
			if err != nil {
				return err
			}

			return printPage(newPrinter(cmd, opts), query.Paginate(referrals, list.page, list.size(a)), referralTable)
		}),
	}

	list.bind(cmd)
	cmd.Flags().StringVar(&brandID, "brand-id", "", "brand id (defaults to the logged-in brand)")
	return cmd
}

func newReferralsUsersCommand(opts *rootOptions) *cobra.Command {
	var (
		list    listFlags
		brandID string
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the users referred to a brand",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			users, err := a.Dashboard.FetchBrandUsers(cmd.Context(), brandID)
			if err != nil {
				return err
			}
			return printPage(newPrinter(cmd, opts), query.Paginate(users, list.page, list.size(a)), brandUserTable)
		}),
	}

	list.bind(cmd)
	cmd.Flags().StringVar(&brandID, "brand-id", "", "brand id (defaults to the logged-in brand)")
	return cmd
}

func newReferralsUserCommand(opts *rootOptions) *cobra.Command {
	var brandID string

	cmd := &cobra.Command{
		Use:   "user USER_ID",
		Short: "List one user's referrals for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			referrals, err := a.Dashboard.FetchUserBrandReferrals(cmd.Context(), args[0], brandID)
			if err != nil {
				return err
			}
			return printPage(newPrinter(cmd, opts), query.Paginate(referrals, 1, 0), referralTable)
		}),
	}

	cmd.Flags().StringVar(&brandID, "brand-id", "", "brand id (defaults to the logged-in brand)")
	return cmd
}

func referralTable(referrals []models.Referral) table {
	t := table{headers: []string{"ID", "USER", "LINK", "CLICKS", "CREATED"}}
	for _, r := range referrals {
		t.rows = append(t.rows, []string{r.ID, r.UserID.Username, r.ReferralLink, strconv.Itoa(r.Clicks), r.CreatedAt})
	}
	return t
}

func brandUserTable(users []models.BrandUser) table {
	t := table{headers: []string{"ID", "FULL NAME", "USERNAME", "EMAIL", "ROLE"}}
	for _, u := range users {
		t.rows = append(t.rows, []string{u.ID, u.Fullname, u.Username, u.Email, u.Role})
	}
	return t
}
