package main

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/health"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the API, the session backend and the login",
		Args:  cobra.NoArgs,
		RunE: action(opts, func(cmd *cobra.Command, _ []string, a *app) error {
			checker := health.NewChecker()
			checker.Add("api", func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.Config.APIBaseURL, nil)
				if err != nil {
					return err
				}
				_, err = a.HTTP.Do(ctx, req)
				return err
			})
			checker.Add("session", func(ctx context.Context) error {
				_, err := a.Dashboard.Session().Info(ctx)
				return err
			})
			checker.AddOptional("login", func(ctx context.Context) error {
				loggedIn, err := a.Dashboard.Session().IsLoggedIn(ctx)
				if err != nil {
					return err
				}
				if !loggedIn {
					return errors.New("not logged in")
				}
				return nil
			})

			response := checker.Run(cmd.Context())
			err := newPrinter(cmd, opts).print(response, func() table {
				names := make([]string, 0, len(response.Checks))
				for name := range response.Checks {
					names = append(names, name)
				}
				sort.Strings(names)

				t := table{headers: []string{"CHECK", "STATUS", "LATENCY", "MESSAGE"}}
				for _, name := range names {
					check := response.Checks[name]
					t.rows = append(t.rows, []string{name, string(check.Status), check.Latency, check.Message})
				}
				return t
			})
			if err != nil {
				return err
			}
			if response.Status == health.StatusUnhealthy {
				return errors.New("collably is unhealthy")
			}
			return nil
		}),
	}
}
