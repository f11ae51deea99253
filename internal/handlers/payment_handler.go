package handlers

import (
	"net/http"

	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	subscriptionService *services.SubscriptionService
}

func NewPaymentHandler(base *BaseHandler, subscriptionService *services.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payment := r.Group("/payment")
	payment.Use(middleware.AuthMiddleware())
	{
		payment.POST("/create-order", h.CreateOrder)
		payment.POST("/verify", h.VerifyPayment)
	}
}

// CreateOrder returns the gateway's order object verbatim so the client can
// open the checkout with it.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	_, username, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.subscriptionService.CreateOrder(c.Request.Context(), h.GetDB(c), username, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	_, username, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.PaymentVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.subscriptionService.VerifyPayment(c.Request.Context(), h.GetDB(c), username, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully. Subscription activated!"})
}
