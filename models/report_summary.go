package models

import "time"

// ReportSummary is the persisted AI prose generated from an analytics
// report, one row per user/window/start.
type ReportSummary struct {
	ID        string    `gorm:"type:varchar(50);primaryKey"`
	UserID    string    `gorm:"type:varchar(50);index:idx_summary_user_window,unique"`
	Window    string    `gorm:"type:varchar(10);index:idx_summary_user_window,unique"`
	StartDate string    `gorm:"type:varchar(10);index:idx_summary_user_window,unique"`
	Summary   string    `gorm:"type:text"`
	CreatedAt time.Time
}

func (ReportSummary) TableName() string {
	return "report_summaries"
}
