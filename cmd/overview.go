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

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "One-screen pipeline health summary from the latest snapshot",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		format, _ := cmd.Flags().GetString("format")

		overview, err := svc.Overview(ctx)
		if err != nil {
			logging.Error(ctx, "overview failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "overview")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(overview)
		}

		cmd.Printf("snapshot %s (as of %s)\n", overview.SnapshotLabel, overview.AsOf)
		cmd.Printf("open requisitions: %d, active candidates: %d\n\n", overview.OpenReqs, overview.ActiveCands)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "top risks\tscore\tband")
		for _, r := range overview.TopRisks {
			fmt.Fprintf(w, "%s\t%.0f\t%s\n", r.ReqKey, r.Score, r.Band)
		}
		fmt.Fprintln(w, "\t\t")
		fmt.Fprintln(w, "next up\tscore\tpriority")
		for _, e := range overview.NextUp {
			fmt.Fprintf(w, "%s\t%.1f\t%s\n", e.ReqKey, e.Score, e.Priority)
		}
		fmt.Fprintln(w, "\t\t")
		fmt.Fprintln(w, "worst breaches\tdwell\towner")
		for _, b := range overview.TopBreaches {
			fmt.Fprintf(w, "%s/%s\t%.1fd\t%s\n", b.ReqKey, b.CandidateKey, b.DwellDays, b.Owner)
		}
		if len(overview.Overloaded) > 0 {
			fmt.Fprintln(w, "\t\t")
			fmt.Fprintln(w, "overloaded\twu\tutilization")
			for _, l := range overview.Overloaded {
				fmt.Fprintf(w, "%s\t%.2f\t%.0f%%\n", l.Recruiter, l.WU, l.Utilization*100)
			}
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(overviewCmd)

	overviewCmd.Flags().String("format", "table", "Output format: table or json")
}
