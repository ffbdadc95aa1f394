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

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Recruiter load in work units, with suggested rebalancing moves",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		format, _ := cmd.Flags().GetString("format")

		report, err := svc.CapacityReport(ctx)
		if err != nil {
			logging.Error(ctx, "capacity report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "capacity report")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "recruiter\topen_reqs\twu\tcapacity\tutilization\toverloaded")
		for _, l := range report.Loads {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f\t%.0f%%\t%v\n",
				l.Recruiter, l.OpenReqs, l.WU, l.Capacity, l.Utilization*100, l.Overloaded)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if len(report.Moves) == 0 {
			cmd.Println("\nno rebalancing moves suggested")
			return nil
		}

		cmd.Println()
		w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "move req\tfrom\tto\twu")
		for _, m := range report.Moves {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", m.ReqKey, m.From, m.To, m.WU)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(capacityCmd)

	capacityCmd.Flags().String("format", "table", "Output format: table or json")
}
