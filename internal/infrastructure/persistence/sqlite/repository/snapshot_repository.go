package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hireboard/internal/errs"
	"hireboard/internal/infrastructure/persistence/sqlite/model"
	"hireboard/internal/ports"
)

type SnapshotRepository struct {
	db *gorm.DB
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *SnapshotRepository) ListSnapshots(ctx context.Context, limit int) ([]ports.Snapshot, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Snapshot{}).Order("taken_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.Snapshot
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query snapshots")
	}

	items := make([]ports.Snapshot, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapSnapshot(row))
	}
	return items, nil
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, snapshotID string) (ports.Snapshot, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Snapshot{}, err
	}

	var row model.Snapshot
	if err := db.Where("snapshot_id = ?", strings.TrimSpace(snapshotID)).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Snapshot{}, ports.ErrSnapshotNotFound
		}
		return ports.Snapshot{}, errs.Wrap(err, "query snapshot by id")
	}
	return mapSnapshot(row), nil
}

func (r *SnapshotRepository) LatestSnapshot(ctx context.Context) (ports.Snapshot, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Snapshot{}, err
	}

	var row model.Snapshot
	if err := db.Order("taken_at desc").Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Snapshot{}, ports.ErrSnapshotNotFound
		}
		return ports.Snapshot{}, errs.Wrap(err, "query latest snapshot")
	}
	return mapSnapshot(row), nil
}

func (r *SnapshotRepository) ListRequisitions(ctx context.Context, snapshotID string) ([]ports.RequisitionRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.SnapshotRequisition
	if err := db.
		Where("snapshot_id = ?", snapshotID).
		Order("req_key asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query snapshot requisitions")
	}

	items := make([]ports.RequisitionRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.RequisitionRow{
			SnapshotID: row.SnapshotID,
			ReqKey:     row.ReqKey,
			Title:      row.Title,
			Department: row.Department,
			Level:      row.Level,
			Location:   row.Location,
			Recruiter:  row.Recruiter,
			Priority:   row.Priority,
			Status:     row.Status,
			OpenedAt:   row.OpenedAt,
			TargetDate: row.TargetDate,
			FilledAt:   row.FilledAt,
		})
	}
	return items, nil
}

func (r *SnapshotRepository) ListCandidates(ctx context.Context, snapshotID string) ([]ports.CandidateRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.SnapshotCandidate
	if err := db.
		Where("snapshot_id = ?", snapshotID).
		Order("candidate_key asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query snapshot candidates")
	}

	items := make([]ports.CandidateRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.CandidateRow{
			SnapshotID:     row.SnapshotID,
			CandidateKey:   row.CandidateKey,
			ReqKey:         row.ReqKey,
			Name:           row.Name,
			Source:         row.Source,
			Stage:          row.Stage,
			StageEnteredAt: row.StageEnteredAt,
			Active:         row.Active,
		})
	}
	return items, nil
}

func (r *SnapshotRepository) ListStageEvents(ctx context.Context, filter ports.StageEventFilter) ([]ports.StageEvent, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.StageEvent{}).Order("event_id asc")
	if reqKey := strings.TrimSpace(filter.ReqKey); reqKey != "" {
		query = query.Where("req_key = ?", reqKey)
	}
	if candidateKey := strings.TrimSpace(filter.CandidateKey); candidateKey != "" {
		query = query.Where("candidate_key = ?", candidateKey)
	}
	if eventType := strings.TrimSpace(filter.EventType); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.StageEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query stage events")
	}

	items := make([]ports.StageEvent, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.StageEvent{
			EventID:        row.EventID,
			ReqKey:         row.ReqKey,
			CandidateKey:   row.CandidateKey,
			EventType:      row.EventType,
			FromValue:      row.FromValue,
			ToValue:        row.ToValue,
			OccurredAt:     row.OccurredAt,
			FromSnapshotID: row.FromSnapshotID,
			ToSnapshotID:   row.ToSnapshotID,
		})
	}
	return items, nil
}

func (r *SnapshotRepository) CreateSnapshot(ctx context.Context, snapshot ports.Snapshot, requisitions []ports.RequisitionRow, candidates []ports.CandidateRow) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if strings.TrimSpace(snapshot.SnapshotID) == "" {
		return errors.New("snapshot id is required")
	}

	row := model.Snapshot{
		SnapshotID: snapshot.SnapshotID,
		Label:      snapshot.Label,
		Source:     snapshot.Source,
		TakenAt:    snapshot.TakenAt,
		CreatedAt:  snapshot.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert snapshot")
	}

	if len(requisitions) > 0 {
		reqRows := make([]model.SnapshotRequisition, 0, len(requisitions))
		for _, req := range requisitions {
			reqRows = append(reqRows, model.SnapshotRequisition{
				SnapshotID: snapshot.SnapshotID,
				ReqKey:     req.ReqKey,
				Title:      req.Title,
				Department: req.Department,
				Level:      req.Level,
				Location:   req.Location,
				Recruiter:  req.Recruiter,
				Priority:   req.Priority,
				Status:     req.Status,
				OpenedAt:   req.OpenedAt,
				TargetDate: req.TargetDate,
				FilledAt:   req.FilledAt,
			})
		}
		if err := db.CreateInBatches(reqRows, 200).Error; err != nil {
			return errs.Wrap(err, "insert snapshot requisitions")
		}
	}

	if len(candidates) > 0 {
		candRows := make([]model.SnapshotCandidate, 0, len(candidates))
		for _, cand := range candidates {
			candRows = append(candRows, model.SnapshotCandidate{
				SnapshotID:     snapshot.SnapshotID,
				CandidateKey:   cand.CandidateKey,
				ReqKey:         cand.ReqKey,
				Name:           cand.Name,
				Source:         cand.Source,
				Stage:          cand.Stage,
				StageEnteredAt: cand.StageEnteredAt,
				Active:         cand.Active,
			})
		}
		if err := db.CreateInBatches(candRows, 200).Error; err != nil {
			return errs.Wrap(err, "insert snapshot candidates")
		}
	}

	return nil
}

func (r *SnapshotRepository) AppendStageEvents(ctx context.Context, events []ports.StageEventCreate) error {
	if len(events) == 0 {
		return nil
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	rows := make([]model.StageEvent, 0, len(events))
	for _, event := range events {
		rows = append(rows, model.StageEvent{
			ReqKey:         event.ReqKey,
			CandidateKey:   event.CandidateKey,
			EventType:      event.EventType,
			FromValue:      event.FromValue,
			ToValue:        event.ToValue,
			OccurredAt:     event.OccurredAt,
			FromSnapshotID: event.FromSnapshotID,
			ToSnapshotID:   event.ToSnapshotID,
		})
	}
	if err := db.CreateInBatches(rows, 200).Error; err != nil {
		return errs.Wrap(err, "insert stage events")
	}
	return nil
}

func mapSnapshot(row model.Snapshot) ports.Snapshot {
	return ports.Snapshot{
		SnapshotID: row.SnapshotID,
		Label:      row.Label,
		Source:     row.Source,
		TakenAt:    row.TakenAt,
		CreatedAt:  row.CreatedAt,
	}
}
