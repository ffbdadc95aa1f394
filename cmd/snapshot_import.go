package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hireboard/internal/bootstrap"
	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/usecase/talent"
)

var snapshotImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a requisitions/candidates CSV pair as a new snapshot",
	RunE: withApp(func(cmd *cobra.Command, _ []string, _ *bootstrap.App, svc *talent.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reqsPath, _ := cmd.Flags().GetString("requisitions")
		candsPath, _ := cmd.Flags().GetString("candidates")
		label, _ := cmd.Flags().GetString("label")
		takenAtRaw, _ := cmd.Flags().GetString("taken-at")

		var takenAt time.Time
		if normalized := strings.TrimSpace(takenAtRaw); normalized != "" {
			parsed, err := parseFlagTime(normalized)
			if err != nil {
				return fmt.Errorf("invalid --taken-at value %q: expected RFC3339 or YYYY-MM-DD", takenAtRaw)
			}
			takenAt = parsed
		}

		result, err := svc.ImportSnapshot(ctx, talent.ImportSnapshotInput{
			Label:            label,
			Source:           "csv",
			RequisitionsPath: reqsPath,
			CandidatesPath:   candsPath,
			TakenAt:          takenAt,
		})
		if err != nil {
			logging.Error(ctx, "snapshot import failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "import snapshot")
		}

		for _, warning := range result.Warnings {
			cmd.Printf("warning: %s\n", warning)
		}
		cmd.Printf("imported snapshot %s (%s): %d requisitions, %d candidates, %d events derived\n",
			result.SnapshotID, result.Label, result.Requisitions, result.Candidates, result.Events)
		return nil
	}),
}

func init() {
	snapshotCmd.AddCommand(snapshotImportCmd)

	snapshotImportCmd.Flags().String("requisitions", "", "Path to requisitions CSV")
	snapshotImportCmd.Flags().String("candidates", "", "Path to candidates CSV")
	snapshotImportCmd.Flags().String("label", "", "Snapshot label (default: taken-at date)")
	snapshotImportCmd.Flags().String("taken-at", "", "When the export was taken (RFC3339 or YYYY-MM-DD, default now)")
	_ = snapshotImportCmd.MarkFlagRequired("requisitions")
	_ = snapshotImportCmd.MarkFlagRequired("candidates")
}

func parseFlagTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", value)
}
