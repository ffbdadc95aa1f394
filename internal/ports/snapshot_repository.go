package ports

import (
	"context"
	"errors"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one imported point-in-time export of the hiring pipeline.
type Snapshot struct {
	SnapshotID string
	Label      string
	Source     string
	TakenAt    string
	CreatedAt  string
}

type RequisitionRow struct {
	SnapshotID string
	ReqKey     string
	Title      string
	Department string
	Level      string
	Location   string
	Recruiter  string
	Priority   string
	Status     string
	OpenedAt   string
	TargetDate *string
	FilledAt   *string
}

type CandidateRow struct {
	SnapshotID     string
	CandidateKey   string
	ReqKey         string
	Name           string
	Source         string
	Stage          string
	StageEnteredAt string
	Active         bool
}

// StageEvent is a change derived by diffing two successive snapshots.
type StageEvent struct {
	EventID        uint64
	ReqKey         string
	CandidateKey   string
	EventType      string
	FromValue      string
	ToValue        string
	OccurredAt     string
	FromSnapshotID string
	ToSnapshotID   string
}

type StageEventCreate struct {
	ReqKey         string
	CandidateKey   string
	EventType      string
	FromValue      string
	ToValue        string
	OccurredAt     string
	FromSnapshotID string
	ToSnapshotID   string
}

type StageEventFilter struct {
	ReqKey       string
	CandidateKey string
	EventType    string
	Limit        int
}

type SnapshotReadRepository interface {
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)
	GetSnapshot(ctx context.Context, snapshotID string) (Snapshot, error)
	LatestSnapshot(ctx context.Context) (Snapshot, error)
	ListRequisitions(ctx context.Context, snapshotID string) ([]RequisitionRow, error)
	ListCandidates(ctx context.Context, snapshotID string) ([]CandidateRow, error)
	ListStageEvents(ctx context.Context, filter StageEventFilter) ([]StageEvent, error)
}

type SnapshotRepository interface {
	SnapshotReadRepository
	CreateSnapshot(ctx context.Context, snapshot Snapshot, requisitions []RequisitionRow, candidates []CandidateRow) error
	AppendStageEvents(ctx context.Context, events []StageEventCreate) error
}
