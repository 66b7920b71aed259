package main

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Ramsey-B/collably/config"
	"github.com/Ramsey-B/collably/pkg/twin"
)

func newTwinCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "twin",
		Short: "Run a local fake of the Collably API for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fxApp := fx.New(
				fx.NopLogger,
				fx.Supply(opts),
				fx.Provide(loadConfig, newLogger, twin.New),
				fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, server *twin.Server, logger ectologger.Logger) {
					if port == 0 {
						port = cfg.TwinPort
					}
					registerTwin(lc, server, logger, fmt.Sprintf(":%d", port))
				}),
			)
			if err := fxApp.Start(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fake Collably API on http://localhost:%d (admin %s / %s)\n", port, twin.AdminEmail, twin.AdminPassword)
			<-cmd.Context().Done()

			return fxApp.Stop(context.Background())
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (defaults to TWIN_PORT)")
	return cmd
}

func registerTwin(lc fx.Lifecycle, server *twin.Server, logger ectologger.Logger, addr string) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Start(addr); err != nil {
					logger.WithError(err).Errorf("Fake API on %s stopped", addr)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
