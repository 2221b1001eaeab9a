package routes

import (
	"subtrack/internal/auth"
	"subtrack/internal/handlers"
	"subtrack/internal/logger"
	"subtrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	SetupPublicRoutes(ginRouter, appHandlers.HealthHandler)

	api := ginRouter.Group("/api/v1")
	{
		member := api.Group("")
		member.Use(middleware.AuthMiddleware(tokens))
		appHandlers.SubscriptionHandler.RegisterRoutes(member)
		appHandlers.CategoryHandler.RegisterRoutes(member)

		SetupAdminRoutes(api, appHandlers.AdminHandler, tokens)
	}
	logger.Info("API routes registered", "base", "/api/v1")
}
