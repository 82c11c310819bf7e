package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/automation"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/graph"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/jira"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/sendgrid"
	httpmw "github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	meetingsUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meetings"
	minutesUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	notifyUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/notify"
	summaryUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/summary"
	taskUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/tasks"
	pkgai "github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// @title           Meeting Minutes API
// @version         1.0
// @description     Minutes of meeting, Jira task tracking, missing-field alerts and Outlook scheduling

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Production deployments run cmd/migrate instead
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate to apply schema changes")
	}

	// Cache: Redis when enabled, in-process otherwise
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, "mom:")
	} else {
		log.Println("⚠️  Redis disabled, using in-memory cache")
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}

	// Object storage for archived minutes
	var archive minutesUsecase.Archive
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archive = minioClient
	} else {
		log.Println("⚠️  Object storage disabled, minutes are mailed without archiving")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	minutesRepo := repository.NewMinutesRepository(db)
	meetingTasksRepo := repository.NewMeetingTasksRepository(db)

	// Initialize external clients
	log.Println("🔌 Initializing external clients...")
	jiraClient := jira.NewClient(&cfg.Jira)
	sendgridClient := sendgrid.NewClient(&cfg.SendGrid)
	graphClient := graph.NewClient(&cfg.Graph)
	automationClient := automation.NewClient(&cfg.Automation)
	if !graphClient.Configured() {
		log.Println("⚠️  Graph access token not set, calendar routes will reject requests")
	}

	log.Println("🤖 Initializing AI components...")
	generator := newGenerator(cfg)
	log.Printf("✅ Summaries generated by %s", generator.Name())

	// Initialize services
	log.Println("✨ Initializing services...")
	summaryService := summaryUsecase.NewService(generator, logger)
	taskService := taskUsecase.NewService(jiraClient, meetingTasksRepo, store, cfg.Cache.ProjectTTL, logger)
	notifyService := notifyUsecase.NewService(
		sendgridClient,
		automationClient,
		cfg.Detector.OrganizerEmail,
		cfg.Jira.TaskBoardURL,
		logger,
	)
	minutesService := minutesUsecase.NewService(minutesRepo, archive, graphClient, taskService, summaryService, logger)
	meetingsService := meetingsUsecase.NewService(graphClient, minutesRepo, summaryService, cfg.Graph.DefaultTimeZone, logger)

	// Initialize handlers
	log.Println("🚪 Initializing handlers...")
	minutesHandler := handler.NewMinutesHandler(minutesService, logger)
	tasksHandler := handler.NewTasksHandler(taskService, logger)
	notifyHandler := handler.NewNotifyHandler(notifyService, taskService, logger)
	summaryHandler := handler.NewSummaryHandler(summaryService, logger)
	meetingsHandler := handler.NewMeetingsHandler(meetingsService, logger)

	var authMW echo.MiddlewareFunc
	if cfg.Auth.Enabled {
		log.Println("🔑 Initializing JWT manager...")
		jwtManager := jwt.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessExpiry)
		authMW = httpmw.EchoAuth(jwtManager)
	} else {
		log.Println("⚠️  API authentication disabled")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, minutesHandler, tasksHandler, notifyHandler, summaryHandler, meetingsHandler, authMW)
	router.Setup(e)

	// Background missing-field detection
	var sweeper *notifyUsecase.Sweeper
	if cfg.Detector.Interval > 0 {
		sweeper = notifyUsecase.NewSweeper(taskService, notifyService, store, cfg.Detector.Interval, cfg.Detector.AlertTTL, logger)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start sweeper: %v", err)
		}
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if sweeper != nil {
		if err := sweeper.Stop(); err != nil {
			log.Printf("⚠️  Sweeper stop: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newGenerator(cfg *config.Config) summaryUsecase.Generator {
	if cfg.AI.Provider == "groq" {
		return pkgai.NewGroqClient(&cfg.AI.Groq)
	}
	return pkgai.NewGeminiClient(&cfg.AI.Gemini)
}
