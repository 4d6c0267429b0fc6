package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-health-assistant/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Index)
	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.GET("/panels", handler.ListPanels)
		api.POST("/reports/analyze", handler.AnalyzeReport)
		api.POST("/symptoms/check", handler.CheckSymptoms)
		api.POST("/plans/diet", handler.PlanDiet)
		api.POST("/plans/exercise", handler.PlanExercise)
		api.POST("/education", handler.EducateOnTopic)
		api.POST("/reminders", handler.SetReminder)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
