package routes

import (
	_ "subtrack/docs"
	"subtrack/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupPublicRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler) {
	healthHandler.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
