package routes

import (
	"PlannerGo/controllers"
	"PlannerGo/middleware"
	"PlannerGo/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ai *services.AIService) {
	authController := controllers.AuthController{}
	taskController := controllers.TaskController{}
	goalController := controllers.NewGoalController(ai)
	blueprintController := controllers.BlueprintController{}
	reflectionController := controllers.ReflectionController{}
	reportController := controllers.NewReportController(ai)
	metricsController := controllers.MetricsController{}

	// public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authController.Login)
	}

	// authenticated routes
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		private.GET("/tasks", taskController.ListTasks)
		private.POST("/tasks", taskController.CreateTask)
		private.PATCH("/tasks/:id", taskController.UpdateTask)
		private.POST("/tasks/:id/toggle", taskController.ToggleTask)
		private.DELETE("/tasks/:id", taskController.DeleteTask)
		private.POST("/tasks/:id/timer/start", taskController.StartTimer)
		private.POST("/tasks/:id/timer/stop", taskController.StopTimer)

		private.GET("/goals", goalController.ListGoals)
		private.POST("/goals", goalController.CreateGoal)
		private.PATCH("/goals/:id", goalController.UpdateGoal)
		private.DELETE("/goals/:id", goalController.DeleteGoal)
		private.POST("/goals/:id/steps", goalController.GenerateSteps)

		private.GET("/blueprints", blueprintController.ListBlueprints)
		private.POST("/blueprints", blueprintController.CreateBlueprint)
		private.PATCH("/blueprints/:id", blueprintController.UpdateBlueprint)
		private.DELETE("/blueprints/:id", blueprintController.DeleteBlueprint)
		private.POST("/blueprints/apply", blueprintController.ApplyBlueprints)

		private.GET("/reflections", reflectionController.ListReflections)
		private.POST("/reflections", reflectionController.SaveReflection)

		private.GET("/report", reportController.GetReport)
		private.POST("/report/summary", reportController.GenerateSummary)
		private.GET("/report/summaries", reportController.ListSummaries)
	}

	// internal routes (server-side callers only)
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.GET("/metrics", metricsController.GetMetrics)
	}

	// health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
