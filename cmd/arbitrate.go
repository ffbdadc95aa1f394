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

var arbitrateCmd = &cobra.Command{
	Use:   "arbitrate",
	Short: "Rank open requisitions by where recruiter attention pays off most",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		top, _ := cmd.Flags().GetInt("top")
		format, _ := cmd.Flags().GetString("format")

		entries, err := svc.Arbitrate(ctx)
		if err != nil {
			logging.Error(ctx, "arbitration failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "arbitrate")
		}
		if top > 0 && len(entries) > top {
			entries = entries[:top]
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "rank\treq\ttitle\tpriority\tscore\trisk\tage_pressure\tpipeline")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%.0f\t%.1f\t%.1f\n",
				e.Rank, e.ReqKey, e.Title, e.Priority, e.Score, e.RiskScore, e.AgePressure, e.PipelineStrength)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(arbitrateCmd)

	arbitrateCmd.Flags().Int("top", 0, "Only show the top N requisitions")
	arbitrateCmd.Flags().String("format", "table", "Output format: table or json")
}
