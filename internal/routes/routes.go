package routes

import (
	"github.com/YC815/Miaoli/internal/container"
	"github.com/YC815/Miaoli/internal/metrics"
	"github.com/YC815/Miaoli/internal/middleware"
	"github.com/YC815/Miaoli/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api")
	api.Use(security.JWTMiddleware())

	c.InventoryHandler.RegisterRoutes(api)
	c.DonationHandler.RegisterRoutes(api)
	c.DistributionHandler.RegisterRoutes(api)
	c.ReportHandler.RegisterRoutes(api)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckHandler())
	router.GET("/metrics", metrics.Handler())
}
