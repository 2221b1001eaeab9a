package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"subtrack/internal/auth"
	"subtrack/internal/config"
	"subtrack/internal/database"
	"subtrack/internal/handlers"
	"subtrack/internal/logger"
	"subtrack/internal/middleware"
	"subtrack/internal/repositories"
	"subtrack/internal/routes"
	"subtrack/internal/services"
	"subtrack/internal/validator"
	"subtrack/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run поднимает HTTP-сервер и блокируется до SIGINT/SIGTERM
func Run(cfg *config.Config) error {
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return auth.ErrMissingSecret
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		return err
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Info("Schema migrated")
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.TTL)*time.Minute)
	ginRouter := SetupRouter(cfg, gormDB, tokens)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, tokens *auth.TokenManager) *gin.Engine {
	apperrors.Debug = cfg.IsDevelopment()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Сервисы
	serviceContainer := initializeServices()

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, gormDB)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, tokens)

	return ginRouter
}

func initializeServices() *services.ServiceContainer {
	subscriptionRepo := repositories.NewSubscriptionRepository()
	categoryRepo := repositories.NewCategoryRepository()
	tagRepo := repositories.NewTagRepository()
	membershipRepo := repositories.NewMembershipRepository()

	membership := services.NewMembershipVerifier(membershipRepo)

	return &services.ServiceContainer{
		SubscriptionService: services.NewSubscriptionService(subscriptionRepo, categoryRepo, tagRepo, membership),
		CategoryService:     services.NewCategoryService(categoryRepo, subscriptionRepo, membership),
		Membership:          membership,
	}
}

func initializeHandlers(services *services.ServiceContainer, gormDB *gorm.DB) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, services.SubscriptionService),
		CategoryHandler:     handlers.NewCategoryHandler(baseHandler, services.CategoryService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.SubscriptionService, services.CategoryService),
		HealthHandler:       handlers.NewHealthHandler(gormDB),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
