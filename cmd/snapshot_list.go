package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported snapshots, newest first",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		items, err := svc.ListSnapshots(ctx, limit)
		if err != nil {
			logging.Error(ctx, "list snapshots failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list snapshots")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "snapshot_id\tlabel\tsource\ttaken_at")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.SnapshotID, item.Label, item.Source, item.TakenAt)
		}
		return w.Flush()
	}),
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd)

	snapshotListCmd.Flags().Int("limit", 20, "Max snapshots to list")
	snapshotListCmd.Flags().String("format", "table", "Output format: table or json")
}
