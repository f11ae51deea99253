package dto

import (
	"time"

	"tradejournal_backend/internal/models"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

type TradeRequest struct {
	Instrument string          `json:"instrument" validate:"required"`
	TradeType  string          `json:"tradeType" validate:"required,is-trade-type"`
	EntryPrice decimal.Decimal `json:"entryPrice" validate:"required,gt=0"`
	ExitPrice  decimal.Decimal `json:"exitPrice" validate:"required,gt=0"`
	Quantity   int             `json:"quantity" validate:"required,min=1"`
	LotSize    *int            `json:"lotSize,omitempty" validate:"omitempty,min=1"`
	TradeDate  string          `json:"tradeDate" validate:"required,datetime=2006-01-02"`
	Notes      string          `json:"notes,omitempty"`
}

type DateRangeQuery struct {
	StartDate string `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" validate:"required,datetime=2006-01-02"`
}

type TradeResponse struct {
	ID         string          `json:"id"`
	Instrument string          `json:"instrument"`
	TradeType  models.TradeType `json:"tradeType"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Quantity   int             `json:"quantity"`
	LotSize    int             `json:"lotSize"`
	TradeDate  string          `json:"tradeDate"`
	Notes      string          `json:"notes,omitempty"`
	ProfitLoss decimal.Decimal `json:"profitLoss"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// NewTradeResponse converts the entity to its wire form.
func NewTradeResponse(t *models.Trade) *TradeResponse {
	return &TradeResponse{
		ID:         t.ID,
		Instrument: t.Instrument,
		TradeType:  t.TradeType,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Quantity:   t.Quantity,
		LotSize:    t.LotSize,
		TradeDate:  t.TradeDate.Format(DateLayout),
		Notes:      t.Notes,
		ProfitLoss: t.ProfitLoss,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// NewTradeResponseList converts a slice preserving order.
func NewTradeResponseList(trades []models.Trade) []TradeResponse {
	out := make([]TradeResponse, 0, len(trades))
	for i := range trades {
		out = append(out, *NewTradeResponse(&trades[i]))
	}
	return out
}
