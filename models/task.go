package models

import (
	"time"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a single planner item. DueDate is a plain YYYY-MM-DD calendar
// date with no time zone conversion; nil means the task sits in the inbox
// (no goal) or backlog (has a goal). StartTime is an HH:MM slot on that
// day's timeline; nil means all-day.
type Task struct {
	ID             string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(200)" json:"title"`
	UserID         string     `gorm:"type:varchar(50);index" json:"user_id"`
	DueDate        *string    `gorm:"type:varchar(10);index" json:"dueDate"`
	GoalID         *string    `gorm:"type:varchar(50);index" json:"goalId"`
	Goal           *Goal      `gorm:"foreignKey:GoalID;constraint:OnDelete:SET NULL" json:"goal,omitempty"`
	StartTime      *string    `gorm:"type:varchar(5)" json:"startTime"`
	Duration       int        `gorm:"default:60" json:"duration"` // planned minutes
	IsCompleted    bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt"`
	Priority       string     `gorm:"type:varchar(10);default:medium" json:"priority"`
	ActualDuration int        `gorm:"default:0" json:"actualDuration"` // accumulated timer minutes
	TimerStartedAt *time.Time `json:"timerStartedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastModified   time.Time  `json:"lastModified"`
}

// GoalTitle returns the joined goal title, or "" for ad-hoc tasks.
func (t *Task) GoalTitle() string {
	if t.Goal != nil {
		return t.Goal.Title
	}
	return ""
}
