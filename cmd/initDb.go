package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create or migrate the sqlite schema",
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App, _ *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "schema migration failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "init schema")
		}

		cmd.Println("schema is up to date")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)
}
