package models

import "time"

// Reflection is the user's written weekly review, one row per week.
type Reflection struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(50);index:idx_reflection_user_week,unique" json:"user_id"`
	WeekStart      string    `gorm:"type:varchar(10);index:idx_reflection_user_week,unique" json:"weekStart"`
	Content        string    `gorm:"type:text" json:"content"`
	Energy         int       `gorm:"default:3" json:"energy"` // 1-5
	TasksCompleted int       `json:"tasksCompleted"`
	TasksScheduled int       `json:"tasksScheduled"`
	NextWeekGoals  string    `gorm:"type:text" json:"nextWeekGoals"`
	CreatedAt      time.Time `json:"createdAt"`
	LastModified   time.Time `json:"lastModified"`
}
