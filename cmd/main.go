package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/devikaharshey/pybot-backend/internal/data/db"
	"github.com/devikaharshey/pybot-backend/internal/data/repos"
	"github.com/devikaharshey/pybot-backend/internal/http/handlers"
	"github.com/devikaharshey/pybot-backend/internal/platform/envutil"
	"github.com/devikaharshey/pybot-backend/internal/platform/gemini"
	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
	"github.com/devikaharshey/pybot-backend/internal/platform/websearch"
	"github.com/devikaharshey/pybot-backend/internal/server"
	"github.com/devikaharshey/pybot-backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Env
	log.Info("Loading environment variables from main...")
	port := envutil.String("PORT", "5000")
	dbConfig := db.Config{
		Host:     envutil.String("POSTGRES_HOST", "localhost"),
		Port:     envutil.String("POSTGRES_PORT", "5432"),
		User:     envutil.String("POSTGRES_USER", "postgres"),
		Password: envutil.String("POSTGRES_PASSWORD", "postgres"),
		Name:     envutil.String("POSTGRES_DB", "pybot"),

		MaxOpenConns: envutil.Int("POSTGRES_MAX_OPEN_CONNS", 20),
		MaxIdleConns: envutil.Int("POSTGRES_MAX_IDLE_CONNS", 5),
	}
	geminiConfig := gemini.Config{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  envutil.String("GEMINI_MODEL", ""),
	}
	searchConfig := websearch.Config{
		APIKey: os.Getenv("GOOGLE_API_KEY"),
		CSEID:  os.Getenv("GOOGLE_CSE_ID"),
	}
	allowOrigins := []string{
		envutil.String("FRONTEND_ORIGIN", "http://localhost:3000"),
		"http://localhost:5173",
	}

	// Postgres
	gdb, err := db.New(dbConfig, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := db.AutoMigrate(gdb, log); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	sessionRepo := repos.NewSessionRepo(gdb, log)
	quizRecordRepo := repos.NewQuizRecordRepo(gdb, log)
	scoreAttemptRepo := repos.NewScoreAttemptRepo(gdb, log)

	// Providers
	log.Info("Setting up providers from main...")
	llm, err := gemini.NewClient(ctx, geminiConfig, log)
	if err != nil {
		log.Fatal("Gemini init failed", "error", err)
	}
	search, err := websearch.NewClient(searchConfig, log)
	if err != nil {
		log.Fatal("Search client init failed", "error", err)
	}

	// Services
	log.Info("Setting up Services from main...")
	sessionService := services.NewSessionService(gdb, log, sessionRepo, quizRecordRepo, scoreAttemptRepo)
	assistantService := services.NewAssistantService(log, sessionService, llm, search)
	quizService := services.NewQuizService(gdb, log, sessionService, llm, quizRecordRepo, scoreAttemptRepo)
	progressService := services.NewProgressService(log, scoreAttemptRepo)
	insightsService := services.NewInsightsService(log, sessionService, llm)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:    allowOrigins,
		HealthHandler:   handlers.NewHealthHandler(),
		ChatHandler:     handlers.NewChatHandler(assistantService),
		SessionHandler:  handlers.NewSessionHandler(sessionService),
		QuizHandler:     handlers.NewQuizHandler(quizService),
		ProgressHandler: handlers.NewProgressHandler(progressService),
		InsightsHandler: handlers.NewInsightsHandler(log, insightsService),
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
