package model

type SnapshotCandidate struct {
	RowID          uint64 `gorm:"column:row_id;primaryKey;autoIncrement"`
	SnapshotID     string `gorm:"column:snapshot_id;type:text;not null;index:idx_cand_snapshot"`
	CandidateKey   string `gorm:"column:candidate_key;type:text;not null;index"`
	ReqKey         string `gorm:"column:req_key;type:text;not null;index"`
	Name           string `gorm:"column:name;type:text;not null"`
	Source         string `gorm:"column:source;type:text;not null"`
	Stage          string `gorm:"column:stage;type:text;not null"`
	StageEnteredAt string `gorm:"column:stage_entered_at;type:text;not null"`
	Active         bool   `gorm:"column:active;not null;default:1"`
}

func (SnapshotCandidate) TableName() string {
	return "snapshot_candidates"
}
