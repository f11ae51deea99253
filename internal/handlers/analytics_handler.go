package handlers

import (
	"net/http"

	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware())
	{
		analytics.GET("", h.GetAnalytics)
	}
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, _, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	resp, err := h.analyticsService.GetAnalytics(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
