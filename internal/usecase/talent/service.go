// Package talent orchestrates snapshot ingestion and the analytical reports
// the dashboard tabs are built from.
package talent

import (
	"context"
	"errors"
	"time"

	"hireboard/internal/bootstrap/config"
	domain "hireboard/internal/domain/talent"
	"hireboard/internal/errs"
	"hireboard/internal/ports"
)

type Service struct {
	cfg   config.Config
	repo  ports.SnapshotRepository
	uow   ports.UnitOfWork
	cache ports.Cache
}

// NewService wires the analytics usecases with repository, transactions and
// the forecast cache.
func NewService(cfg config.Config, repo ports.SnapshotRepository, uow ports.UnitOfWork, cache ports.Cache) *Service {
	return &Service{
		cfg:   cfg,
		repo:  repo,
		uow:   uow,
		cache: cache,
	}
}

// pipelineState is the working set every report runs against: the latest
// snapshot's rows plus the accumulated event log, lifted into domain types.
type pipelineState struct {
	Snapshot     ports.Snapshot
	AsOf         time.Time
	Requisitions []domain.Requisition
	Candidates   []domain.Candidate
	Events       []domain.StageEvent
}

var ErrNoSnapshots = errors.New("no snapshots imported yet")

func (s *Service) loadLatest(ctx context.Context) (pipelineState, error) {
	snapshot, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			return pipelineState{}, ErrNoSnapshots
		}
		return pipelineState{}, errs.Wrap(err, "load latest snapshot")
	}

	reqRows, err := s.repo.ListRequisitions(ctx, snapshot.SnapshotID)
	if err != nil {
		return pipelineState{}, errs.Wrap(err, "load snapshot requisitions")
	}
	candRows, err := s.repo.ListCandidates(ctx, snapshot.SnapshotID)
	if err != nil {
		return pipelineState{}, errs.Wrap(err, "load snapshot candidates")
	}
	eventRows, err := s.repo.ListStageEvents(ctx, ports.StageEventFilter{})
	if err != nil {
		return pipelineState{}, errs.Wrap(err, "load stage events")
	}

	state := pipelineState{
		Snapshot: snapshot,
		AsOf:     parseStoredTime(snapshot.TakenAt),
	}
	for _, row := range reqRows {
		state.Requisitions = append(state.Requisitions, mapRequisition(row))
	}
	for _, row := range candRows {
		state.Candidates = append(state.Candidates, mapCandidate(row))
	}
	for _, row := range eventRows {
		state.Events = append(state.Events, mapStageEvent(row))
	}
	return state, nil
}

func (s *Service) stageSLADays() map[domain.Stage]int {
	out := make(map[domain.Stage]int, len(s.cfg.Pipeline.StageSLADays))
	for name, days := range s.cfg.Pipeline.StageSLADays {
		stage, err := domain.ParseStage(name)
		if err != nil {
			continue
		}
		out[stage] = days
	}
	return out
}

func mapRequisition(row ports.RequisitionRow) domain.Requisition {
	req := domain.Requisition{
		Key:        row.ReqKey,
		Title:      row.Title,
		Department: row.Department,
		Level:      row.Level,
		Location:   row.Location,
		Recruiter:  row.Recruiter,
		Priority:   domain.Priority(row.Priority),
		Status:     domain.ReqStatus(row.Status),
		OpenedAt:   parseStoredTime(row.OpenedAt),
	}
	if row.TargetDate != nil {
		t := parseStoredTime(*row.TargetDate)
		req.TargetDate = &t
	}
	if row.FilledAt != nil {
		t := parseStoredTime(*row.FilledAt)
		req.FilledAt = &t
	}
	return req
}

func mapCandidate(row ports.CandidateRow) domain.Candidate {
	return domain.Candidate{
		Key:            row.CandidateKey,
		ReqKey:         row.ReqKey,
		Name:           row.Name,
		Source:         row.Source,
		Stage:          domain.Stage(row.Stage),
		StageEnteredAt: parseStoredTime(row.StageEnteredAt),
		Active:         row.Active,
	}
}

func mapStageEvent(row ports.StageEvent) domain.StageEvent {
	return domain.StageEvent{
		ReqKey:       row.ReqKey,
		CandidateKey: row.CandidateKey,
		Type:         domain.EventType(row.EventType),
		From:         row.FromValue,
		To:           row.ToValue,
		OccurredAt:   parseStoredTime(row.OccurredAt),
	}
}

// parseStoredTime reads timestamps the repository wrote; stored values are
// always RFC3339, so a zero time only appears for corrupt rows.
func parseStoredTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
