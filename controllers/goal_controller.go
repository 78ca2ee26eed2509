package controllers

import (
	"net/http"
	"time"

	"PlannerGo/config"
	"PlannerGo/models"
	"PlannerGo/services"
	"PlannerGo/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GoalController struct {
	ai *services.AIService
}

func NewGoalController(ai *services.AIService) *GoalController {
	return &GoalController{ai: ai}
}

func ownedGoal(c *gin.Context) (*models.Goal, bool) {
	uid := c.GetString("uid")
	var goal models.Goal
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&goal).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return nil, false
	}
	if err != nil {
		config.Logger.Errorw("goal lookup failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "goal lookup failed"})
		return nil, false
	}
	return &goal, true
}

// ListGoals returns the user's goals.
func (gc *GoalController) ListGoals(c *gin.Context) {
	uid := c.GetString("uid")

	var goals []models.Goal
	if err := config.DB.Where("user_id = ?", uid).Order("created_at").Find(&goals).Error; err != nil {
		config.Logger.Errorw("goal list failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// CreateGoal creates a goal.
func (gc *GoalController) CreateGoal(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := models.Goal{
		ID:     utils.GenerateID(),
		Title:  req.Title,
		UserID: uid,
	}
	if err := config.DB.Create(&goal).Error; err != nil {
		config.Logger.Errorw("goal create failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// UpdateGoal renames a goal.
func (gc *GoalController) UpdateGoal(c *gin.Context) {
	goal, ok := ownedGoal(c)
	if !ok {
		return
	}

	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(goal).Update("title", req.Title).Error; err != nil {
		config.Logger.Errorw("goal update failed", "error", err, "goalID", goal.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a goal and detaches its tasks: the tasks survive
// with goal_id nulled, they are not cascaded.
func (gc *GoalController) DeleteGoal(c *gin.Context) {
	goal, ok := ownedGoal(c)
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Task{}).Where("goal_id = ?", goal.ID).
		Updates(map[string]interface{}{"goal_id": nil, "last_modified": time.Now()}).Error; err != nil {
		tx.Rollback()
		config.Logger.Errorw("goal detach failed", "error", err, "goalID", goal.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete goal"})
		return
	}

	if err := tx.Delete(goal).Error; err != nil {
		tx.Rollback()
		config.Logger.Errorw("goal delete failed", "error", err, "goalID", goal.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete goal"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}

// GenerateSteps asks the model to break the goal into task titles and
// bulk-inserts them as backlog tasks under the goal.
func (gc *GoalController) GenerateSteps(c *gin.Context) {
	goal, ok := ownedGoal(c)
	if !ok {
		return
	}

	titles, err := gc.ai.GenerateGoalSteps(c.Request.Context(), goal.Title)
	if err != nil {
		config.Logger.Errorw("step generation failed", "error", err, "goalID", goal.ID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate steps"})
		return
	}

	now := time.Now()
	tasks := make([]models.Task, 0, len(titles))
	for _, title := range titles {
		tasks = append(tasks, models.Task{
			ID:           utils.GenerateID(),
			Title:        title,
			UserID:       goal.UserID,
			GoalID:       &goal.ID,
			Duration:     60,
			Priority:     models.PriorityMedium,
			LastModified: now,
		})
	}

	if err := config.DB.Create(&tasks).Error; err != nil {
		config.Logger.Errorw("step insert failed", "error", err, "goalID", goal.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save steps"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": tasks})
}
