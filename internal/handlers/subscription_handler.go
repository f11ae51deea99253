package handlers

import (
	"net/http"

	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subscription := r.Group("/subscription")
	{
		// Plan catalog is public
		subscription.GET("/plans", h.GetPlans)

		protected := subscription.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/status", h.GetStatus)
			protected.POST("/cancel", h.CancelSubscription)
		}
	}
}

func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionService.GetPlans())
}

func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	_, username, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	status, err := h.subscriptionService.GetSubscriptionStatus(h.GetDB(c), username)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	_, username, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.CancelSubscription(h.GetDB(c), username); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled successfully"})
}
