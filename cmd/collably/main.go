package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFiles []string
	output   string
	yes      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "collably",
		Short:         "Manage brands, products, creators and content on Collably",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := parseOutput(opts.output)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json or yaml")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "skip confirmation prompts")

	root.AddCommand(
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newStatusCommand(opts),
		newBrandsCommand(opts),
		newProductsCommand(opts),
		newUsersCommand(opts),
		newOrdersCommand(opts),
		newBlogsCommand(opts),
		newReferralsCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newTemplateCommand(opts),
		newTwinCommand(opts),
	)

	return root
}

// action adapts a command body to cobra, building the app graph around it
func action(opts *rootOptions, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), opts, func(_ context.Context, a *app) error {
			return fn(cmd, args, a)
		})
	}
}
