package models

import "time"

// Goal is a weekly objective tasks can link to. Deleting a goal detaches
// its tasks instead of cascading.
type Goal struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200)" json:"title"`
	UserID    string    `gorm:"type:varchar(50);index" json:"user_id"`
	CreatedAt time.Time `json:"createdAt"`
}
