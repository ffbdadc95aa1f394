package model

type SnapshotRequisition struct {
	RowID      uint64  `gorm:"column:row_id;primaryKey;autoIncrement"`
	SnapshotID string  `gorm:"column:snapshot_id;type:text;not null;index:idx_req_snapshot"`
	ReqKey     string  `gorm:"column:req_key;type:text;not null;index"`
	Title      string  `gorm:"column:title;type:text;not null"`
	Department string  `gorm:"column:department;type:text;not null"`
	Level      string  `gorm:"column:level;type:text;not null"`
	Location   string  `gorm:"column:location;type:text;not null"`
	Recruiter  string  `gorm:"column:recruiter;type:text;not null"`
	Priority   string  `gorm:"column:priority;type:text;not null"`
	Status     string  `gorm:"column:status;type:text;not null"`
	OpenedAt   string  `gorm:"column:opened_at;type:text;not null"`
	TargetDate *string `gorm:"column:target_date;type:text"`
	FilledAt   *string `gorm:"column:filled_at;type:text"`
}

func (SnapshotRequisition) TableName() string {
	return "snapshot_requisitions"
}
