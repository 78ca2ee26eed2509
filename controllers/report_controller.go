package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"PlannerGo/config"
	"PlannerGo/models"
	"PlannerGo/services"
	"PlannerGo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ReportController struct {
	ai *services.AIService
}

func NewReportController(ai *services.AIService) *ReportController {
	return &ReportController{ai: ai}
}

const summaryCacheTTL = 24 * time.Hour

func summaryCacheKey(uid, window, start string) string {
	return fmt.Sprintf("report:summary:%s:%s:%s", uid, window, start)
}

// reportFor fetches the window's tasks and runs the aggregator.
func reportFor(uid, window, date string) (services.Report, error) {
	anchor := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return services.Report{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
		anchor = parsed
	}

	w := services.WindowFor(window, anchor)
	start := w.Start.Format("2006-01-02")

	var tasks []models.Task
	err := config.DB.Preload("Goal").
		Where("user_id = ? AND due_date >= ? AND due_date <= ?", uid, start, w.End()).
		Find(&tasks).Error
	if err != nil {
		return services.Report{}, err
	}

	return services.BuildReport(tasks, w), nil
}

// GetReport aggregates the user's tasks over a week or month window.
// Query params: window=week|month (default week), date=YYYY-MM-DD anchor
// (default today). The goal breakdown is trimmed to the top 4 for
// display; the totals cover the full list.
func (rc *ReportController) GetReport(c *gin.Context) {
	uid := c.GetString("uid")

	report, err := reportFor(uid, c.DefaultQuery("window", services.WindowWeek), c.Query("date"))
	if err != nil {
		config.Logger.Errorw("report build failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	display := report
	display.GoalBreakdown = services.TopGoalGroups(report.GoalBreakdown, 4)

	c.JSON(http.StatusOK, gin.H{"report": display})
}

// GenerateSummary turns the window's aggregated numbers into prose. The
// result is cached in redis and persisted, so repeat requests within the
// TTL skip the model call.
func (rc *ReportController) GenerateSummary(c *gin.Context) {
	uid := c.GetString("uid")
	window := c.DefaultQuery("window", services.WindowWeek)

	report, err := reportFor(uid, window, c.Query("date"))
	if err != nil {
		config.Logger.Errorw("report build failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	cacheKey := summaryCacheKey(uid, report.Window, report.StartDate)
	if cached, err := config.RedisClient.Get(c.Request.Context(), cacheKey).Result(); err == nil {
		c.JSON(http.StatusOK, gin.H{"summary": cached, "cached": true})
		return
	} else if err != redis.Nil {
		config.Logger.Warnw("summary cache read failed", "error", err, "key", cacheKey)
	}

	// the user's own written reflection colors the prose when present
	var reflection *models.Reflection
	var row models.Reflection
	err = config.DB.Where("user_id = ? AND week_start = ?", uid, report.StartDate).First(&row).Error
	if err == nil {
		reflection = &row
	} else if err != gorm.ErrRecordNotFound {
		config.Logger.Warnw("reflection lookup failed", "error", err, "uid", uid)
	}

	summary, err := rc.ai.GenerateWeeklySummary(c.Request.Context(), report, reflection)
	if err != nil {
		config.Logger.Errorw("summary generation failed", "error", err, "uid", uid)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate summary"})
		return
	}

	// cache and persist off the request path; shutdown waits for these
	rc.ai.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := config.RedisClient.Set(ctx, cacheKey, summary, summaryCacheTTL).Err(); err != nil {
			config.Logger.Warnw("summary cache write failed", "error", err, "key", cacheKey)
		}

		record := models.ReportSummary{
			ID:        utils.GenerateID(),
			UserID:    uid,
			Window:    report.Window,
			StartDate: report.StartDate,
			Summary:   summary,
		}
		// `window` is reserved in MySQL 8
		err := config.DB.Where("user_id = ? AND `window` = ? AND start_date = ?", uid, report.Window, report.StartDate).
			Assign(map[string]interface{}{"summary": summary}).
			FirstOrCreate(&record).Error
		if err != nil {
			config.Logger.Errorw("summary persist failed", "error", err, "uid", uid)
		}
	})

	c.JSON(http.StatusOK, gin.H{"summary": summary, "cached": false})
}

// ListSummaries returns previously generated summaries, newest first.
func (rc *ReportController) ListSummaries(c *gin.Context) {
	uid := c.GetString("uid")

	var summaries []models.ReportSummary
	if err := config.DB.Where("user_id = ?", uid).
		Order("start_date DESC").Limit(24).Find(&summaries).Error; err != nil {
		config.Logger.Errorw("summary list failed", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list summaries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
