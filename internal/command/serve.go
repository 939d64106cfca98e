package command

import (
	"context"

	"github.com/shandysiswandi/gofta/internal/app"
	"github.com/spf13/cobra"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}
}

func runServe(flags *globalFlags) error {
	application, err := app.New(app.Options{
		ConfigPath: flags.config,
		Debug:      flags.debug,
	})
	if err != nil {
		return err
	}

	wait := application.Start()
	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.Stop(ctx)

	return nil
}
