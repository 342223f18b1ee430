package server

import (
	"net/http"

	handler "github.com/gkrishna247/lendit-p2p-market/services/market/handler"
	"github.com/gkrishna247/lendit-p2p-market/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(marketService handler.MarketServiceInterface, authService handler.AuthServiceInterface, authn Authenticator) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	marketHandler := handler.NewMarketHandler(marketService)
	authHandler := handler.NewAuthHandler(authService)
	requireAuth := RequireAuth(authn)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
	})

	router.GET("/", marketHandler.ListItemsHandler)

	items := router.Group("/items")
	{
		items.GET("", marketHandler.ListItemsHandler)
		items.GET("/:item_id", OptionalAuth(authn), marketHandler.GetItemHandler)
		items.POST("", requireAuth, marketHandler.CreateItemHandler)
		items.DELETE("/:item_id", requireAuth, marketHandler.DeleteItemHandler)
		items.POST("/:item_id/bookings", requireAuth, marketHandler.RequestBookingHandler)
	}

	bookings := router.Group("/bookings", requireAuth)
	{
		bookings.POST("/:booking_id/:action", marketHandler.ResolveBookingHandler)
	}

	router.GET("/my-bookings", requireAuth, marketHandler.MyBookingsHandler)
	router.GET("/dashboard", requireAuth, marketHandler.DashboardHandler)

	router.POST("/register", authHandler.RegisterHandler)
	router.POST("/login", authHandler.LoginHandler)
	router.POST("/logout", authHandler.LogoutHandler)
	router.DELETE("/account", requireAuth, authHandler.DeleteAccountHandler)

	return router
}
