package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/domain/talent"
	"hireboard/internal/errs"
	usecase "hireboard/internal/usecase/talent"
)

var slaCmd = &cobra.Command{
	Use:   "sla",
	Short: "Attribute elapsed pipeline time to its owners and list SLA breaches",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *usecase.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		breachesOnly, _ := cmd.Flags().GetBool("breaches")
		format, _ := cmd.Flags().GetString("format")

		attributions, err := svc.SLAReport(ctx)
		if err != nil {
			logging.Error(ctx, "sla report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "sla report")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(attributions)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if !breachesOnly {
			fmt.Fprintln(w, "req\trecruiter_days\thiring_manager_days\tcandidate_days\tprocess_days\tbreaches")
			for _, a := range attributions {
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%d\n",
					a.ReqKey,
					a.DaysByOwner[talent.OwnerRecruiter],
					a.DaysByOwner[talent.OwnerHiringManager],
					a.DaysByOwner[talent.OwnerCandidate],
					a.DaysByOwner[talent.OwnerProcess],
					len(a.Breaches))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			cmd.Println()
			w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		}

		fmt.Fprintln(w, "req\tcandidate\tstage\towner\tdwell_days\tsla_days\toverage")
		for _, a := range attributions {
			for _, b := range a.Breaches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%d\t%.1f\n",
					b.ReqKey, b.CandidateKey, b.Stage, b.Owner, b.DwellDays, b.SLADays, b.OverageDays)
			}
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(slaCmd)

	slaCmd.Flags().Bool("breaches", false, "Only list breaches")
	slaCmd.Flags().String("format", "table", "Output format: table or json")
}
