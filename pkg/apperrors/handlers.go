package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - ответ об ошибке для пользовательских маршрутов
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// AdminErrorResponse - ответ об ошибке для админских маршрутов
type AdminErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// adminSurfaceKey помечает запрос как пришедший в админский набор маршрутов
const adminSurfaceKey = "apperrors.admin_surface"

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error", "error", appErr.Error())
		if !h.Debug {
			appErr = appErr.WithDetails(nil)
		}
	}

	if IsAdminSurface(c) {
		c.AbortWithStatusJSON(appErr.HTTPCode, AdminErrorResponse{
			Success: false,
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// Debug включает детали 5xx ошибок в ответе. Выставляется из конфига при старте.
var Debug = false

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: Debug}
	handler.HandleGinError(c, err)
}

// AdminSurface - middleware, переключающий формат ошибок на {success:false, error, details}
func AdminSurface() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(adminSurfaceKey, true)
		c.Next()
	}
}

func IsAdminSurface(c *gin.Context) bool {
	return c.GetBool(adminSurfaceKey)
}
