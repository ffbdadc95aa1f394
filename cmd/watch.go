package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
	"hireboard/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a drop directory and import CSV export pairs as snapshots",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("dir", args[0]))
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info(ctx, "watching for csv export pairs")
		if err := watch.New(args[0], svc).Run(ctx); err != nil {
			logging.Error(ctx, "watcher failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "watch directory")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
