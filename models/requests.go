package models

import (
	"fmt"
	"strings"
	"time"
)

// LoginRequest signs a user in by email, creating the account on first
// use. OAuth providers sit in front of this service.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}

func validPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// CreateTaskRequest creates a single task.
type CreateTaskRequest struct {
	Title     string  `json:"title" binding:"required"`
	DueDate   *string `json:"dueDate"`
	StartTime *string `json:"startTime"`
	Duration  int     `json:"duration"`
	Priority  string  `json:"priority"`
	GoalID    *string `json:"goalId"`
}

func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.DueDate != nil && !validDate(*r.DueDate) {
		return fmt.Errorf("dueDate must be YYYY-MM-DD")
	}
	if r.StartTime != nil && !validClock(*r.StartTime) {
		return fmt.Errorf("startTime must be HH:MM")
	}
	if r.Duration <= 0 {
		r.Duration = 60
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !validPriority(r.Priority) {
		return fmt.Errorf("priority must be low, medium or high")
	}
	return nil
}

// UpdateTaskRequest patches a task. Pointer fields are applied only when
// present; the Clear flags null the corresponding column.
type UpdateTaskRequest struct {
	Title          *string `json:"title"`
	DueDate        *string `json:"dueDate"`
	ClearDueDate   bool    `json:"clearDueDate"`
	StartTime      *string `json:"startTime"`
	ClearStartTime bool    `json:"clearStartTime"`
	Duration       *int    `json:"duration"`
	Priority       *string `json:"priority"`
	GoalID         *string `json:"goalId"`
	ClearGoal      bool    `json:"clearGoal"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			return fmt.Errorf("title cannot be empty")
		}
		r.Title = &trimmed
	}
	if r.DueDate != nil && !validDate(*r.DueDate) {
		return fmt.Errorf("dueDate must be YYYY-MM-DD")
	}
	if r.StartTime != nil && !validClock(*r.StartTime) {
		return fmt.Errorf("startTime must be HH:MM")
	}
	if r.Duration != nil && *r.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if r.Priority != nil && !validPriority(*r.Priority) {
		return fmt.Errorf("priority must be low, medium or high")
	}
	return nil
}

// CreateGoalRequest creates or renames a goal.
type CreateGoalRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateBlueprintRequest creates or edits a recurring task template.
type CreateBlueprintRequest struct {
	Title     string `json:"title" binding:"required"`
	Duration  int    `json:"duration"`
	Priority  string `json:"priority"`
	DayOfWeek *int   `json:"dayOfWeek"`
}

func (r *CreateBlueprintRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Duration <= 0 {
		r.Duration = 60
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !validPriority(r.Priority) {
		return fmt.Errorf("priority must be low, medium or high")
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > DayCodeWeekend) {
		return fmt.Errorf("dayOfWeek must be 0-9")
	}
	return nil
}

// ApplyBlueprintsRequest expands the user's blueprints into the week
// containing Date.
type ApplyBlueprintsRequest struct {
	Date string `json:"date" binding:"required"`
}

func (r *ApplyBlueprintsRequest) Validate() error {
	if !validDate(r.Date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

// SaveReflectionRequest upserts the written review for one week.
type SaveReflectionRequest struct {
	WeekStart      string `json:"weekStart" binding:"required"`
	Content        string `json:"content"`
	Energy         int    `json:"energy"`
	TasksCompleted int    `json:"tasksCompleted"`
	TasksScheduled int    `json:"tasksScheduled"`
	NextWeekGoals  string `json:"nextWeekGoals"`
}

func (r *SaveReflectionRequest) Validate() error {
	if !validDate(r.WeekStart) {
		return fmt.Errorf("weekStart must be YYYY-MM-DD")
	}
	if r.Energy == 0 {
		r.Energy = 3
	}
	if r.Energy < 1 || r.Energy > 5 {
		return fmt.Errorf("energy must be 1-5")
	}
	return nil
}
