package talent

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireboard/internal/bootstrap/logging"
	"hireboard/internal/errs"
	"hireboard/internal/ingest"
	"hireboard/internal/ports"
)

type ImportSnapshotInput struct {
	Label            string
	Source           string
	RequisitionsPath string
	CandidatesPath   string
	TakenAt          time.Time
}

type ImportSnapshotResult struct {
	SnapshotID   string
	Label        string
	Requisitions int
	Candidates   int
	Events       int
	Warnings     []string
}

// ImportSnapshot parses a requisitions/candidates CSV pair, persists it as a
// new snapshot and, when an earlier snapshot exists, appends the diff-derived
// stage events, all in one transaction.
func (s *Service) ImportSnapshot(ctx context.Context, input ImportSnapshotInput) (ImportSnapshotResult, error) {
	if ctx == nil {
		return ImportSnapshotResult{}, errors.New("context is required")
	}
	if strings.TrimSpace(input.RequisitionsPath) == "" {
		return ImportSnapshotResult{}, errors.New("requisitions csv path is required")
	}
	if strings.TrimSpace(input.CandidatesPath) == "" {
		return ImportSnapshotResult{}, errors.New("candidates csv path is required")
	}

	reqFile, err := os.Open(input.RequisitionsPath)
	if err != nil {
		return ImportSnapshotResult{}, errs.Wrapf(err, "open requisitions csv %q", input.RequisitionsPath)
	}
	defer reqFile.Close()

	candFile, err := os.Open(input.CandidatesPath)
	if err != nil {
		return ImportSnapshotResult{}, errs.Wrapf(err, "open candidates csv %q", input.CandidatesPath)
	}
	defer candFile.Close()

	reqRows, reqWarnings, err := ingest.ParseRequisitionsCSV(reqFile)
	if err != nil {
		return ImportSnapshotResult{}, errs.Wrap(err, "parse requisitions csv")
	}
	candRows, candWarnings, err := ingest.ParseCandidatesCSV(candFile)
	if err != nil {
		return ImportSnapshotResult{}, errs.Wrap(err, "parse candidates csv")
	}

	takenAt := input.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = takenAt.Format("2006-01-02")
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = "csv"
	}

	snapshot := ports.Snapshot{
		SnapshotID: uuid.NewString(),
		Label:      label,
		Source:     source,
		TakenAt:    takenAt.UTC().Format(time.RFC3339Nano),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}

	result := ImportSnapshotResult{
		SnapshotID:   snapshot.SnapshotID,
		Label:        label,
		Requisitions: len(reqRows),
		Candidates:   len(candRows),
		Warnings:     append(reqWarnings, candWarnings...),
	}

	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		previous, err := s.repo.LatestSnapshot(txCtx)
		hasPrevious := err == nil
		if err != nil && !errors.Is(err, ports.ErrSnapshotNotFound) {
			return errs.Wrap(err, "load previous snapshot")
		}

		if err := s.repo.CreateSnapshot(txCtx, snapshot, reqRows, candRows); err != nil {
			return errs.Wrap(err, "create snapshot")
		}

		if !hasPrevious {
			return nil
		}

		prevInput, err := s.diffInput(txCtx, previous)
		if err != nil {
			return err
		}
		events := ingest.DiffSnapshots(prevInput, ingest.DiffInput{
			Snapshot:     snapshot,
			Requisitions: reqRows,
			Candidates:   candRows,
		})
		if err := s.repo.AppendStageEvents(txCtx, events); err != nil {
			return errs.Wrap(err, "append stage events")
		}
		result.Events = len(events)
		return nil
	})
	if err != nil {
		return ImportSnapshotResult{}, errs.Wrap(err, "import snapshot")
	}

	logging.Info(ctx, "snapshot imported",
		slog.String("snapshot_id", result.SnapshotID),
		slog.String("label", result.Label),
		slog.Int("requisitions", result.Requisitions),
		slog.Int("candidates", result.Candidates),
		slog.Int("events", result.Events),
	)

	return result, nil
}

type SnapshotListItem struct {
	SnapshotID string
	Label      string
	Source     string
	TakenAt    string
}

func (s *Service) ListSnapshots(ctx context.Context, limit int) ([]SnapshotListItem, error) {
	snapshots, err := s.repo.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "list snapshots")
	}

	items := make([]SnapshotListItem, 0, len(snapshots))
	for _, snapshot := range snapshots {
		items = append(items, SnapshotListItem{
			SnapshotID: snapshot.SnapshotID,
			Label:      snapshot.Label,
			Source:     snapshot.Source,
			TakenAt:    snapshot.TakenAt,
		})
	}
	return items, nil
}

type DiffEventItem struct {
	ReqKey       string
	CandidateKey string
	EventType    string
	From         string
	To           string
	OccurredAt   string
}

// DiffSnapshots recomputes the change events between two stored snapshots
// without persisting anything; import is the only writer of the event log.
func (s *Service) DiffSnapshots(ctx context.Context, fromID, toID string) ([]DiffEventItem, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return nil, errors.New("both snapshot ids are required")
	}

	from, err := s.repo.GetSnapshot(ctx, fromID)
	if err != nil {
		return nil, errs.Wrapf(err, "load snapshot %q", fromID)
	}
	to, err := s.repo.GetSnapshot(ctx, toID)
	if err != nil {
		return nil, errs.Wrapf(err, "load snapshot %q", toID)
	}

	fromInput, err := s.diffInput(ctx, from)
	if err != nil {
		return nil, err
	}
	toInput, err := s.diffInput(ctx, to)
	if err != nil {
		return nil, err
	}

	events := ingest.DiffSnapshots(fromInput, toInput)
	items := make([]DiffEventItem, 0, len(events))
	for _, event := range events {
		items = append(items, DiffEventItem{
			ReqKey:       event.ReqKey,
			CandidateKey: event.CandidateKey,
			EventType:    event.EventType,
			From:         event.FromValue,
			To:           event.ToValue,
			OccurredAt:   event.OccurredAt,
		})
	}
	return items, nil
}

func (s *Service) diffInput(ctx context.Context, snapshot ports.Snapshot) (ingest.DiffInput, error) {
	reqs, err := s.repo.ListRequisitions(ctx, snapshot.SnapshotID)
	if err != nil {
		return ingest.DiffInput{}, errs.Wrapf(err, "load requisitions for snapshot %q", snapshot.SnapshotID)
	}
	cands, err := s.repo.ListCandidates(ctx, snapshot.SnapshotID)
	if err != nil {
		return ingest.DiffInput{}, errs.Wrapf(err, "load candidates for snapshot %q", snapshot.SnapshotID)
	}
	return ingest.DiffInput{
		Snapshot:     snapshot,
		Requisitions: reqs,
		Candidates:   cands,
	}, nil
}
