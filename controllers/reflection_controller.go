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

type ReflectionController struct{}

// ListReflections returns the user's reflections, newest week first.
func (rc *ReflectionController) ListReflections(c *gin.Context) {
	uid := c.GetString("uid")

	query := config.DB.Where("user_id = ?", uid)
	if week := c.Query("week"); week != "" {
		query = query.Where("week_start = ?", week)
	}

	var reflections []models.Reflection
	if err := query.Order("week_start DESC").Find(&reflections).Error; err != nil {
		config.Logger.Errorw("reflection list failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reflections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reflections": reflections})
}

// SaveReflection upserts the written review for one week, keyed on
// (user, week_start).
func (rc *ReflectionController) SaveReflection(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.SaveReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	var reflection models.Reflection
	err := config.DB.Where("user_id = ? AND week_start = ?", uid, req.WeekStart).First(&reflection).Error
	if err == gorm.ErrRecordNotFound {
		reflection = models.Reflection{
			ID:             utils.GenerateID(),
			UserID:         uid,
			WeekStart:      req.WeekStart,
			Content:        req.Content,
			Energy:         req.Energy,
			TasksCompleted: req.TasksCompleted,
			TasksScheduled: req.TasksScheduled,
			NextWeekGoals:  req.NextWeekGoals,
			LastModified:   now,
		}
		if err := config.DB.Create(&reflection).Error; err != nil {
			config.Logger.Errorw("reflection create failed", "error", err, "uid", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reflection"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"reflection": reflection})
		return
	}
	if err != nil {
		config.Logger.Errorw("reflection lookup failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reflection"})
		return
	}

	updates := map[string]interface{}{
		"content":         req.Content,
		"energy":          req.Energy,
		"tasks_completed": req.TasksCompleted,
		"tasks_scheduled": req.TasksScheduled,
		"next_week_goals": req.NextWeekGoals,
		"last_modified":   now,
	}
	if err := config.DB.Model(&reflection).Updates(updates).Error; err != nil {
		config.Logger.Errorw("reflection update failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reflection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reflection": reflection})
}
