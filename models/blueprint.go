package models

import "time"

// Day-of-week codes stored on a blueprint. 0-6 are concrete weekdays
// (0=Sunday), the rest are recurrence shorthands expanded at apply time.
const (
	DayCodeEveryday = 7
	DayCodeWeekdays = 8
	DayCodeWeekend  = 9
)

// Blueprint is a recurring task template. A nil DayOfWeek produces a
// single undated (inbox) task when the blueprint is applied.
type Blueprint struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(50);index" json:"user_id"`
	Title     string    `gorm:"type:varchar(200)" json:"title"`
	Duration  int       `gorm:"default:60" json:"duration"`
	Priority  string    `gorm:"type:varchar(10);default:medium" json:"priority"`
	DayOfWeek *int      `json:"dayOfWeek"`
	CreatedAt time.Time `json:"createdAt"`
}
