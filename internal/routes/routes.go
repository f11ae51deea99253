package routes

import (
	"tradejournal_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.TradeHandler.RegisterRoutes(api)
		appHandlers.AnalyticsHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
	}
}
