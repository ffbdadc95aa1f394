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

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Rank sourcing channels by hire conversion, pass-through and speed",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		format, _ := cmd.Flags().GetString("format")

		reports, err := svc.SourceReport(ctx)
		if err != nil {
			logging.Error(ctx, "source report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "source report")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "source\tcandidates\thires\thire_rate\tpass_through\tmedian_days\tscore")
		for _, r := range reports {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%.1f\t%.1f\n",
				r.Source, r.Candidates, r.Hires, r.HireRate, r.PassThroughRate, r.MedianDaysToHire, r.Score)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().String("format", "table", "Output format: table or json")
}
