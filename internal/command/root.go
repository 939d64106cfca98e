// Package command provides the gofta command line: the HTTP server plus
// one-shot import, generate, report and reset commands.
package command

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/gofta/internal/app"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type globalFlags struct {
	config string
	debug  bool
}

// NewRootCommand builds the gofta command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "gofta",
		Short: "Financial transaction analysis service",
		Long: `gofta stores bank transfer statements and reports suspicious
transactions, accounts and agencies per month.

Example:
  gofta serve
  gofta import statement.csv --username ana
  gofta report 2022-01`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default is /config/config.yaml, or ./config/config.yaml with LOCAL=true)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(flags),
		newImportCommand(flags),
		newGenerateCommand(flags),
		newReportCommand(flags),
		newResetCommand(flags),
	)

	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// withModule builds the application without HTTP, hands its usecase to fn and
// shuts everything down afterwards.
func withModule(flags *globalFlags, fn func(ctx context.Context, a *app.App) error) error {
	application, err := app.New(app.Options{
		ConfigPath:  flags.config,
		Debug:       flags.debug,
		WithoutHTTP: true,
	})
	if err != nil {
		return err
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		application.Stop(ctx)
	}()

	if application.FTA() == nil {
		return errors.New("module fta is disabled")
	}

	return fn(context.Background(), application)
}
