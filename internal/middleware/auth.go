package middleware

import (
	"strings"

	"subtrack/internal/auth"
	"subtrack/internal/logger"
	"subtrack/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Ключи gin.Context, которые заполняет AuthMiddleware
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// AuthMiddleware проверяет Bearer JWT и кладет userID и role в контекст
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected token", "error", err.Error(), "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" || !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func GetRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}
