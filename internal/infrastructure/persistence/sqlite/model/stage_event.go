package model

type StageEvent struct {
	EventID        uint64 `gorm:"column:event_id;primaryKey;autoIncrement"`
	ReqKey         string `gorm:"column:req_key;type:text;not null;index"`
	CandidateKey   string `gorm:"column:candidate_key;type:text;not null;index"`
	EventType      string `gorm:"column:event_type;type:text;not null;index"`
	FromValue      string `gorm:"column:from_value;type:text;not null"`
	ToValue        string `gorm:"column:to_value;type:text;not null"`
	OccurredAt     string `gorm:"column:occurred_at;type:text;not null;index"`
	FromSnapshotID string `gorm:"column:from_snapshot_id;type:text;not null"`
	ToSnapshotID   string `gorm:"column:to_snapshot_id;type:text;not null"`
}

func (StageEvent) TableName() string {
	return "stage_events"
}
