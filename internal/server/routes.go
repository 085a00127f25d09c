package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
	"github.com/WaqarAhmad321/smart-city-sol/internal/config"
	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, cfg *config.Config, authHandler *auth.AuthHandler, pollingHandler *polling.PollingHandler) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authGroup := public.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		public.GET("/proposals", pollingHandler.ListProposals)
		public.GET("/proposals/:proposal_id", pollingHandler.GetProposal)
	}

	// Protected routes (require JWT authentication)
	protected := router.Group("/api/v1")
	protected.Use(auth.JWTAuth(cfg.JWT.Secret))
	{
		protected.POST("/proposals", pollingHandler.CreateProposal)
		protected.POST("/proposals/:proposal_id/votes", pollingHandler.CastVote)
		protected.GET("/proposals/:proposal_id/votes/me", pollingHandler.GetMyVote)
	}
}
