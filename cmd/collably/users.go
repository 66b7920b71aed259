package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/query"
)

func newUsersCommand(opts *rootOptions) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage creator accounts",
	}
	users.AddCommand(
		newUsersListCommand(opts),
		newUsersGetCommand(opts),
		newUsersCreateCommand(opts),
		newUsersUpdateCommand(opts),
		newUsersFollowCommand(opts, true),
		newUsersFollowCommand(opts, false),
		newUsersSearchCommand(opts),
	)
	return users
}

func newUsersListCommand(opts *rootOptions) *cobra.Command {
	var list listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			users, err := a.Dashboard.FetchAllUsers(cmd.Context())
			if err != nil {
				return err
			}

			filtered := query.UserFilter{Search: list.search}.Apply(users)
			return printPage(newPrinter(cmd, opts), query.Paginate(filtered, list.page, list.size(a)), userTable)
		}),
	}

	list.bind(cmd)
	return cmd
}

func newUsersGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			user, err := a.Dashboard.FetchUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(user, func() table { return userDetail(user) })
		}),
	}
}

type userFlags struct {
	input  models.UserInput
	avatar string
}

func (f *userFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.input.Fullname, "fullname", "", "full name")
	flags.StringVar(&f.input.Username, "username", "", "username")
	flags.StringVar(&f.input.Email, "email", "", "email")
	flags.StringVar(&f.input.Password, "password", "", "password")
	flags.StringVar(&f.input.Gender, "gender", "", "gender")
	flags.StringVar(&f.input.Mobile, "mobile", "", "mobile number")
	flags.StringVar(&f.input.Address, "address", "", "address")
	flags.StringVar(&f.input.Story, "story", "", "profile story")
	flags.StringVar(&f.input.Website, "website", "", "website URL")
	flags.StringVar(&f.avatar, "avatar", "", "avatar image file to upload")
}

func (f *userFlags) merge(cmd *cobra.Command, user models.User) models.UserInput {
	input := models.UserInput{
		ID:       user.ID,
		Fullname: user.Fullname,
		Username: user.Username,
		Email:    user.Email,
		Gender:   user.Gender,
		Mobile:   user.Mobile,
		Address:  user.Address,
		Story:    user.Story,
		Website:  user.Website,
	}

	set := map[string]func(){
		"fullname": func() { input.Fullname = f.input.Fullname },
		"username": func() { input.Username = f.input.Username },
		"email":    func() { input.Email = f.input.Email },
		"password": func() { input.Password = f.input.Password },
		"gender":   func() { input.Gender = f.input.Gender },
		"mobile":   func() { input.Mobile = f.input.Mobile },
		"address":  func() { input.Address = f.input.Address },
		"story":    func() { input.Story = f.input.Story },
		"website":  func() { input.Website = f.input.Website },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	input.Avatar = attachment("avatar", f.avatar)
	return input
}

func newUsersCreateCommand(opts *rootOptions) *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			input := flags.input
			input.Avatar = attachment("avatar", flags.avatar)

			user, err := a.Dashboard.CreateUser(cmd.Context(), input)
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(user, func() table { return userDetail(user) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newUsersUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags userFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user profile, keeping fields whose flags are not set",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			existing, err := a.Dashboard.FetchUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			user, err := a.Dashboard.UpdateUser(cmd.Context(), flags.merge(cmd, existing))
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(user, func() table { return userDetail(user) })
		}),
	}

	flags.bind(cmd)
	return cmd
}

func newUsersFollowCommand(opts *rootOptions, follow bool) *cobra.Command {
	use, short := "follow ID", "Follow a user"
	if !follow {
		use, short = "unfollow ID", "Stop following a user"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			toggle := a.Dashboard.FollowUser
			if !follow {
				toggle = a.Dashboard.UnfollowUser
			}

			user, err := toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd, opts).print(user, func() table { return userDetail(user) })
		}),
	}
}

func newUsersSearchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search USERNAME",
		Short: "Find users by username",
		Args:  cobra.ExactArgs(1),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			users, err := a.Dashboard.SearchUsers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPage(newPrinter(cmd, opts), query.Paginate(users, 1, 0), userTable)
		}),
	}
}

func userTable(users []models.User) table {
	t := table{headers: []string{"ID", "FULL NAME", "USERNAME", "EMAIL", "FOLLOWERS", "FOLLOWING"}}
	for _, u := range users {
		t.rows = append(t.rows, []string{
			u.ID,
			u.Fullname,
			u.Username,
			u.Email,
			strconv.Itoa(len(u.Followers)),
			strconv.Itoa(len(u.Following)),
		})
	}
	return t
}

func userDetail(u models.User) table {
	referredBy := ""
	if u.ReferredBy != nil {
		referredBy = *u.ReferredBy
	}
	return table{
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"id", u.ID},
			{"full name", u.Fullname},
			{"username", u.Username},
			{"email", u.Email},
			{"role", u.Role},
			{"gender", u.Gender},
			{"mobile", u.Mobile},
			{"website", u.Website},
			{"followers", strconv.Itoa(len(u.Followers))},
			{"following", strconv.Itoa(len(u.Following))},
			{"referral code", u.ReferralCode},
			{"referred by", referredBy},
		},
	}
}
