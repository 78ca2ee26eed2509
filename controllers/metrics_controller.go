package controllers

import (
	"net/http"

	"PlannerGo/config"
	"PlannerGo/models"

	"github.com/gin-gonic/gin"
)

type MetricsController struct{}

// GetMetrics reports row counts for internal monitoring.
func (mc *MetricsController) GetMetrics(c *gin.Context) {
	config.Logger.Infow("internal metrics requested",
		"sourceIP", c.ClientIP(),
		"userAgent", c.Request.UserAgent(),
	)

	counts := map[string]int64{}
	tables := map[string]interface{}{
		"users":       &models.User{},
		"tasks":       &models.Task{},
		"goals":       &models.Goal{},
		"blueprints":  &models.Blueprint{},
		"reflections": &models.Reflection{},
	}
	for name, model := range tables {
		var count int64
		if err := config.DB.Model(model).Count(&count).Error; err != nil {
			config.Logger.Errorw("metrics count failed", "error", err, "table", name)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect metrics"})
			return
		}
		counts[name] = count
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
