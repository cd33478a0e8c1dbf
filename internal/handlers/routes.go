package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures the dev server routes. Every method is routed to
// the visit handler so the local server mirrors the Lambda dispatch.
func SetupRoutes(router *gin.Engine, visitHandler *VisitHandler) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "visit-counter-api",
			"timestamp": time.Now().UTC(),
		})
	})

	router.Any("/visits", visitHandler.ServeGin)

	v1 := router.Group("/api/v1")
	{
		v1.Any("/visits", visitHandler.ServeGin)
	}
}
