package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shandysiswandi/gofta/internal/app"
	"github.com/shandysiswandi/gofta/internal/fta/inbound"
	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
	"github.com/spf13/cobra"
)

func newImportCommand(flags *globalFlags) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV or XLSX statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return withModule(flags, func(ctx context.Context, a *app.App) error {
				ctx = pkglog.SetUsername(ctx, username)
				if err := a.FTA().Usecase.Ingest(ctx, data, filepath.Base(args[0]), username); err != nil {
					return err
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
				return err
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", inbound.AnonymousUser, "user recorded on the import")

	return cmd
}

func newGenerateCommand(flags *globalFlags) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Store a batch of synthetic transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModule(flags, func(ctx context.Context, a *app.App) error {
				ctx = pkglog.SetUsername(ctx, username)
				if err := a.FTA().Usecase.GenerateAndStore(ctx, username); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "transactions generated")
				return err
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", inbound.AnonymousUser, "user recorded on the import")

	return cmd
}

func newReportCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report <YYYY-MM>",
		Short: "Print the fraud report of a month as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModule(flags, func(ctx context.Context, a *app.App) error {
				report := a.FTA().Usecase.BuildMonthlyReport(ctx, &args[0])

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(inbound.NewReportResponse(report))
			})
		},
	}
}

func newResetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored transaction and import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModule(flags, func(ctx context.Context, a *app.App) error {
				if err := a.FTA().Usecase.Reset(ctx); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "all transactions deleted")
				return err
			})
		},
	}
}
