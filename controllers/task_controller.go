package controllers

import (
	"net/http"
	"time"

	"PlannerGo/config"
	"PlannerGo/models"
	"PlannerGo/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskController struct{}

// ownedTask loads a task and checks it belongs to the requesting user.
func ownedTask(c *gin.Context) (*models.Task, bool) {
	uid := c.GetString("uid")
	var task models.Task
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&task).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return nil, false
	}
	if err != nil {
		config.Logger.Errorw("task lookup failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task lookup failed"})
		return nil, false
	}
	return &task, true
}

// ListTasks returns the user's tasks. Filters: date=YYYY-MM-DD for a
// single day, from/to for a range, inbox=true (no date, no goal),
// backlog=true (no date, has goal).
func (tc *TaskController) ListTasks(c *gin.Context) {
	uid := c.GetString("uid")

	query := config.DB.Preload("Goal").Where("user_id = ?", uid)

	switch {
	case c.Query("date") != "":
		query = query.Where("due_date = ?", c.Query("date"))
	case c.Query("from") != "" && c.Query("to") != "":
		query = query.Where("due_date >= ? AND due_date <= ?", c.Query("from"), c.Query("to"))
	case c.Query("inbox") == "true":
		query = query.Where("due_date IS NULL AND goal_id IS NULL")
	case c.Query("backlog") == "true":
		query = query.Where("due_date IS NULL AND goal_id IS NOT NULL")
	}

	var tasks []models.Task
	if err := query.Order("due_date, start_time, created_at").Find(&tasks).Error; err != nil {
		config.Logger.Errorw("task list failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask creates a single task.
func (tc *TaskController) CreateTask(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		ID:           utils.GenerateID(),
		Title:        req.Title,
		UserID:       uid,
		DueDate:      req.DueDate,
		GoalID:       req.GoalID,
		StartTime:    req.StartTime,
		Duration:     req.Duration,
		Priority:     req.Priority,
		LastModified: time.Now(),
	}

	if err := config.DB.Create(&task).Error; err != nil {
		config.Logger.Errorw("task create failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// UpdateTask patches title, schedule, duration, priority or goal link.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	task, ok := ownedTask(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"last_modified": time.Now()}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ClearDueDate {
		updates["due_date"] = nil
		// a task leaving the calendar also leaves the timeline
		updates["start_time"] = nil
	} else if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.ClearStartTime {
		updates["start_time"] = nil
	} else if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.ClearGoal {
		updates["goal_id"] = nil
	} else if req.GoalID != nil {
		updates["goal_id"] = *req.GoalID
	}

	if err := config.DB.Model(task).Updates(updates).Error; err != nil {
		config.Logger.Errorw("task update failed", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// ToggleTask flips completion and stamps or clears completed_at.
func (tc *TaskController) ToggleTask(c *gin.Context) {
	task, ok := ownedTask(c)
	if !ok {
		return
	}

	updates := map[string]interface{}{"last_modified": time.Now()}
	if task.IsCompleted {
		updates["is_completed"] = false
		updates["completed_at"] = nil
	} else {
		now := time.Now()
		updates["is_completed"] = true
		updates["completed_at"] = now
	}

	if err := config.DB.Model(task).Updates(updates).Error; err != nil {
		config.Logger.Errorw("task toggle failed", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask removes a task.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	task, ok := ownedTask(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(task).Error; err != nil {
		config.Logger.Errorw("task delete failed", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// StartTimer marks the task as running. Restarting an already-running
// timer just moves the start marker; last write wins.
func (tc *TaskController) StartTimer(c *gin.Context) {
	task, ok := ownedTask(c)
	if !ok {
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"timer_started_at": now,
		"last_modified":    now,
	}
	if err := config.DB.Model(task).Updates(updates).Error; err != nil {
		config.Logger.Errorw("timer start failed", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start timer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"startedAt": now})
}

// StopTimer accumulates the elapsed minutes into actual_duration and
// clears the start marker. Stopping a timer that is not running is a
// no-op rather than an error.
func (tc *TaskController) StopTimer(c *gin.Context) {
	task, ok := ownedTask(c)
	if !ok {
		return
	}

	if task.TimerStartedAt == nil {
		c.JSON(http.StatusOK, gin.H{"actualDuration": task.ActualDuration})
		return
	}

	elapsed := int(time.Since(*task.TimerStartedAt).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}

	updates := map[string]interface{}{
		"actual_duration":  task.ActualDuration + elapsed,
		"timer_started_at": nil,
		"last_modified":    time.Now(),
	}
	if err := config.DB.Model(task).Updates(updates).Error; err != nil {
		config.Logger.Errorw("timer stop failed", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop timer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"actualDuration": task.ActualDuration + elapsed})
}
