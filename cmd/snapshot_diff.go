package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show the change events between two snapshots",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		fromID, _ := cmd.Flags().GetString("from")
		toID, _ := cmd.Flags().GetString("to")

		events, err := svc.DiffSnapshots(ctx, fromID, toID)
		if err != nil {
			logging.Error(ctx, "snapshot diff failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "diff snapshots")
		}

		if len(events) == 0 {
			cmd.Println("no changes between snapshots")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "event\treq\tcandidate\tfrom\tto")
		for _, event := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				event.EventType, event.ReqKey, event.CandidateKey, event.From, event.To)
		}
		return w.Flush()
	}),
}

func init() {
	snapshotCmd.AddCommand(snapshotDiffCmd)

	snapshotDiffCmd.Flags().String("from", "", "Earlier snapshot id")
	snapshotDiffCmd.Flags().String("to", "", "Later snapshot id")
	_ = snapshotDiffCmd.MarkFlagRequired("from")
	_ = snapshotDiffCmd.MarkFlagRequired("to")
}
