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

type BlueprintController struct{}

func ownedBlueprint(c *gin.Context) (*models.Blueprint, bool) {
	uid := c.GetString("uid")
	var bp models.Blueprint
	err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), uid).First(&bp).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "blueprint not found"})
		return nil, false
	}
	if err != nil {
		config.Logger.Errorw("blueprint lookup failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "blueprint lookup failed"})
		return nil, false
	}
	return &bp, true
}

// ListBlueprints returns the user's templates.
func (bc *BlueprintController) ListBlueprints(c *gin.Context) {
	uid := c.GetString("uid")

	var blueprints []models.Blueprint
	if err := config.DB.Where("user_id = ?", uid).Order("created_at").Find(&blueprints).Error; err != nil {
		config.Logger.Errorw("blueprint list failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blueprints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blueprints": blueprints})
}

// CreateBlueprint creates a template.
func (bc *BlueprintController) CreateBlueprint(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.CreateBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bp := models.Blueprint{
		ID:        utils.GenerateID(),
		UserID:    uid,
		Title:     req.Title,
		Duration:  req.Duration,
		Priority:  req.Priority,
		DayOfWeek: req.DayOfWeek,
	}
	if err := config.DB.Create(&bp).Error; err != nil {
		config.Logger.Errorw("blueprint create failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blueprint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"blueprint": bp})
}

// UpdateBlueprint replaces a template's fields.
func (bc *BlueprintController) UpdateBlueprint(c *gin.Context) {
	bp, ok := ownedBlueprint(c)
	if !ok {
		return
	}

	var req models.CreateBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"duration":    req.Duration,
		"priority":    req.Priority,
		"day_of_week": req.DayOfWeek,
	}
	if err := config.DB.Model(bp).Updates(updates).Error; err != nil {
		config.Logger.Errorw("blueprint update failed", "error", err, "blueprintID", bp.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update blueprint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blueprint": bp})
}

// DeleteBlueprint removes a template. Tasks already expanded from it are
// untouched.
func (bc *BlueprintController) DeleteBlueprint(c *gin.Context) {
	bp, ok := ownedBlueprint(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(bp).Error; err != nil {
		config.Logger.Errorw("blueprint delete failed", "error", err, "blueprintID", bp.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete blueprint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "blueprint deleted"})
}

// ApplyBlueprints expands every template of the user into the week
// containing the given date and batch-inserts the surviving instances.
// The write is best effort: insert failures are logged, not surfaced,
// and the view re-fetches afterwards either way.
func (bc *BlueprintController) ApplyBlueprints(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.ApplyBlueprintsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	monday, err := services.WeekStart(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	weekStart := monday.Format("2006-01-02")
	weekEnd := monday.AddDate(0, 0, 6).Format("2006-01-02")

	var blueprints []models.Blueprint
	if err := config.DB.Where("user_id = ?", uid).Order("created_at").Find(&blueprints).Error; err != nil {
		config.Logger.Errorw("blueprint fetch failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load blueprints"})
		return
	}

	// snapshot of the week's tasks for duplicate suppression
	var existingRows []models.Task
	if err := config.DB.Select("title", "due_date").
		Where("user_id = ? AND due_date >= ? AND due_date <= ?", uid, weekStart, weekEnd).
		Find(&existingRows).Error; err != nil {
		config.Logger.Errorw("existing task fetch failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}
	existing := make([]services.ExistingTask, len(existingRows))
	for i, row := range existingRows {
		existing[i] = services.ExistingTask{Title: row.Title, DueDate: row.DueDate}
	}

	instances := services.ExpandBlueprints(blueprints, existing, req.Date)
	if len(instances) == 0 {
		c.JSON(http.StatusOK, models.ApplyBlueprintsResponse{Created: 0, Week: weekStart})
		return
	}

	now := time.Now()
	for i := range instances {
		instances[i].ID = utils.GenerateID()
		instances[i].UserID = uid
		instances[i].LastModified = now
	}

	if err := config.DB.Create(&instances).Error; err != nil {
		// best effort: the whole batch is dropped and the view re-renders
		config.Logger.Errorw("blueprint apply insert failed", "error", err, "uid", uid, "count", len(instances))
		c.JSON(http.StatusOK, models.ApplyBlueprintsResponse{Created: 0, Week: weekStart})
		return
	}

	c.JSON(http.StatusOK, models.ApplyBlueprintsResponse{Created: len(instances), Week: weekStart})
}
