package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

var premortemCmd = &cobra.Command{
	Use:   "premortem",
	Short: "Score open requisitions for failure risk before it happens",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		band, _ := cmd.Flags().GetString("band")
		verbose, _ := cmd.Flags().GetBool("factors")
		format, _ := cmd.Flags().GetString("format")

		assessments, err := svc.PreMortem(ctx)
		if err != nil {
			logging.Error(ctx, "pre-mortem failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "pre-mortem")
		}

		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(assessments)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "req\ttitle\trecruiter\tscore\tband")
		for _, a := range assessments {
			if band != "" && !strings.EqualFold(a.Band, band) {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\n", a.ReqKey, a.Title, a.Recruiter, a.Score, a.Band)
			if verbose {
				for _, f := range a.Factors {
					fmt.Fprintf(w, "\t%s\t%s\t+%.0f\t\n", f.Code, f.Detail, f.Points)
				}
			}
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(premortemCmd)

	premortemCmd.Flags().String("band", "", "Only show one band (critical, elevated, guarded, low)")
	premortemCmd.Flags().Bool("factors", false, "Show the contributing factors per requisition")
	premortemCmd.Flags().String("format", "table", "Output format: table or json")
}
