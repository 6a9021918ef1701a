package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"skillswap/database"
	"skillswap/internal/auth"
	"skillswap/internal/config"
	"skillswap/internal/email"
	"skillswap/internal/handlers"
	"skillswap/internal/logger"
	"skillswap/internal/middleware"
	"skillswap/internal/repositories"
	"skillswap/internal/routes"
	"skillswap/internal/services"
	"skillswap/internal/storage"
	"skillswap/internal/validator"
	"skillswap/internal/workers"
	"skillswap/pkg/apperrors"
	"skillswap/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	cfg := config.MustLoad()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()

	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("AutoMigrate failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ginRouter, serviceContainer := SetupRouter(ctx, cfg, gormDB, sqlDB)

	if cfg.Reminders.Enabled {
		workers.NewSessionReminderWorker(
			gormDB,
			repositories.NewSwapRepository(),
			serviceContainer.NotificationService,
			cfg.Reminders.Interval,
			cfg.Reminders.Window,
		).Start(ctx)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("Server startup error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	serviceContainer.NotificationService.Wait()
	logger.Info("Server stopped")
}

// SetupRouter собирает сервисы, хэндлеры и маршруты. WebSocket-хаб живет, пока жив ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. WebSocket-хаб: через него сервисы рассылают события
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)
	wsHandler := ws.NewWebSocketHandler(wsManager, cfg.Server.AllowedOrigins)

	// 2. Сервисы
	serviceContainer := initializeServices(cfg, storageInstance, wsManager)

	// 3. Аутентификация
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	requireAuth := middleware.AuthMiddleware(tokens, serviceContainer.UserService, middleware.AuthOptions{})
	wsAuth := middleware.AuthMiddleware(tokens, serviceContainer.UserService, middleware.AuthOptions{AllowQueryToken: true})

	// 4. Хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, requireAuth, sqlDB)

	// 5. Gin
	metrics := middleware.NewHTTPMetrics("skillswap")
	ginRouter := initializeGinRouter(cfg, gormDB, metrics)
	ginRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, wsAuth)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, events services.EventPublisher) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.SMTPEnabled() {
		smtpProvider, err := email.NewSMTPProvider(email.ConfigFromApp(cfg))
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailProvider = smtpProvider
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = email.NewLogProvider()
		logger.Warn("SMTP is not configured, emails will only be logged")
	}

	// Repositories
	userRepo := repositories.NewUserRepository()
	skillRepo := repositories.NewSkillRepository()
	swapRepo := repositories.NewSwapRepository()
	messageRepo := repositories.NewMessageRepository()
	reviewRepo := repositories.NewReviewRepository()
	fileRepo := repositories.NewFileRepository()
	statsRepo := repositories.NewStatsRepository()

	notificationService := services.NewNotificationService(emailProvider, email.NewTemplateManager(), cfg.Email.AppURL)

	return &services.ServiceContainer{
		UserService:         services.NewUserService(userRepo),
		SkillService:        services.NewSkillService(skillRepo),
		SwapService:         services.NewSwapService(swapRepo, skillRepo, notificationService, events),
		MessageService:      services.NewMessageService(messageRepo, swapRepo, events),
		ReviewService:       services.NewReviewService(reviewRepo, swapRepo, events),
		StatsService:        services.NewStatsService(statsRepo),
		UploadService:       services.NewUploadService(fileRepo, storageInstance, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
		NotificationService: notificationService,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, requireAuth gin.HandlerFunc, sqlDB *sql.DB) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, requireAuth)

	var pinger handlers.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, services.UserService),
		SkillHandler:  handlers.NewSkillHandler(baseHandler, services.SkillService),
		SwapHandler:   handlers.NewSwapHandler(baseHandler, services.SwapService, services.MessageService),
		ReviewHandler: handlers.NewReviewHandler(baseHandler, services.ReviewService),
		StatsHandler:  handlers.NewStatsHandler(baseHandler, services.StatsService),
		UploadHandler: handlers.NewUploadHandler(baseHandler, services.UploadService),
		FileHandler:   handlers.NewFileHandler(baseHandler, services.UploadService),
		HealthHandler: handlers.NewHealthHandler(pinger),
		StaticHandler: handlers.NewStaticHandler(cfg.Server.StaticDir),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, metrics *middleware.HTTPMetrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.Server.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(cfg.Server.RateLimitPerMinute)))
	}
	router.Use(middleware.DBMiddleware(db))
	return router
}
