package model

type Snapshot struct {
	SnapshotID string `gorm:"column:snapshot_id;type:text;primaryKey"`
	Label      string `gorm:"column:label;type:text;not null"`
	Source     string `gorm:"column:source;type:text;not null"`
	TakenAt    string `gorm:"column:taken_at;type:text;not null;index"`
	CreatedAt  string `gorm:"column:created_at;type:text;not null"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}
