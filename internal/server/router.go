package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devikaharshey/pybot-backend/internal/http/handlers"
)

type RouterConfig struct {
	AllowOrigins    []string
	HealthHandler   *handlers.HealthHandler
	ChatHandler     *handlers.ChatHandler
	SessionHandler  *handlers.SessionHandler
	QuizHandler     *handlers.QuizHandler
	ProgressHandler *handlers.ProgressHandler
	InsightsHandler *handlers.InsightsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Chat
		api.POST("/chat", cfg.ChatHandler.Chat)
		// Sessions
		api.GET("/chats", cfg.SessionHandler.List)
		api.PATCH("/chats/:session_id", cfg.SessionHandler.Rename)
		api.DELETE("/chats/:session_id", cfg.SessionHandler.Delete)
		api.POST("/save-transcript", cfg.SessionHandler.SaveTranscript)
		// Quiz
		api.GET("/generate-quiz", cfg.QuizHandler.Generate)
		api.POST("/submit-quiz", cfg.QuizHandler.Submit)
		api.POST("/reset-quiz", cfg.QuizHandler.Reset)
		// Progress & insights
		api.GET("/progress-chart", cfg.ProgressHandler.Chart)
		api.GET("/dashboard", cfg.InsightsHandler.Dashboard)
		api.POST("/analyze-resume", cfg.InsightsHandler.AnalyzeResume)
	}

	return router
}
