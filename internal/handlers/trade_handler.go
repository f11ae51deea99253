package handlers

import (
	"net/http"

	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TradeHandler struct {
	*BaseHandler
	tradeService *services.TradeService
}

func NewTradeHandler(base *BaseHandler, tradeService *services.TradeService) *TradeHandler {
	return &TradeHandler{
		BaseHandler:  base,
		tradeService: tradeService,
	}
}

func (h *TradeHandler) RegisterRoutes(r *gin.RouterGroup) {
	trades := r.Group("/trades")
	trades.Use(middleware.AuthMiddleware())
	{
		trades.POST("", h.CreateTrade)
		trades.GET("", h.GetAllTrades)
		trades.GET("/date-range", h.GetTradesByDateRange)
		trades.DELETE("/:id", h.DeleteTrade)
	}
}

func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID, _, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.TradeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trade)
}

func (h *TradeHandler) GetAllTrades(c *gin.Context) {
	userID, _, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	trades, err := h.tradeService.GetAllTrades(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

func (h *TradeHandler) GetTradesByDateRange(c *gin.Context) {
	userID, _, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	var query dto.DateRangeQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	trades, err := h.tradeService.GetTradesByDateRange(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID, _, ok := h.GetAuthenticatedUser(c)
	if !ok {
		return
	}

	tradeID := c.Param("id")
	if err := h.tradeService.DeleteTrade(c.Request.Context(), h.GetDB(c), userID, tradeID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trade deleted successfully"})
}
