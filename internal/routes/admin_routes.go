package routes

import (
	"subtrack/internal/auth"
	"subtrack/internal/handlers"
	"subtrack/internal/middleware"
	"subtrack/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes - AdminSurface стоит первым, чтобы и ошибки авторизации шли в админском формате
func SetupAdminRoutes(api *gin.RouterGroup, adminHandler *handlers.AdminHandler, tokens *auth.TokenManager) {
	admin := api.Group("/admin")
	admin.Use(
		apperrors.AdminSurface(),
		middleware.AuthMiddleware(tokens),
		middleware.RequireRoles(auth.RoleAdmin),
	)
	adminHandler.RegisterRoutes(admin)
}
