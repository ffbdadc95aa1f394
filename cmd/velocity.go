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

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Time-to-fill stats and per-stage dwell percentiles",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		format, _ := cmd.Flags().GetString("format")

		report, err := svc.VelocityReport(ctx)
		if err != nil {
			logging.Error(ctx, "velocity report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "velocity report")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		cmd.Printf("filled requisitions: %d\n", report.FilledReqs)
		cmd.Printf("time to fill: mean %.1fd, median %.1fd, p90 %.1fd\n",
			report.MeanTTF, report.MedianTTF, report.P90TTF)
		cmd.Printf("trend: %s\n\n", report.Trend)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "stage\tsamples\tp50_days\tp90_days")
		for _, s := range report.StageDwell {
			fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\n", s.Stage, s.Samples, s.P50, s.P90)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(velocityCmd)

	velocityCmd.Flags().String("format", "table", "Output format: table or json")
}
