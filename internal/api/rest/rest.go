package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/jonumhills/townhall-rwa/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Claim endpoints
		v1.POST("/claims", handler.SubmitClaim)
		v1.GET("/claims/:claim_id", handler.GetClaim)

		// Claim decisions (requires authentication)
		v1.POST("/claims/:claim_id/decision", middleware.Auth(authCfg), handler.DecideClaim)

		// Listing and settlement endpoints
		v1.POST("/parcels/:county_id/:pin/list", handler.ListShares)
		v1.POST("/parcels/:county_id/:pin/buy", handler.BuyShares)

		// Read-only projections (public read access)
		v1.GET("/listings", handler.GetListings)
		v1.GET("/portfolio/:wallet", handler.GetPortfolio)
		v1.GET("/parcels/owned/:wallet", handler.GetOwnedParcels)
	}
}
