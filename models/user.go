package models

import (
	"time"
)

// User account. Auth providers live outside this service; a user row is
// created on first sign-in.
type User struct {
	ID        string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Username  string     `gorm:"type:varchar(100)" json:"username"`
	Email     string     `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
