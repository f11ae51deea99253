package dto

import "github.com/shopspring/decimal"

type MonthlySummary struct {
	Month      string          `json:"month"` // "YYYY-MM"
	TradeCount int64           `json:"tradeCount"`
	ProfitLoss decimal.Decimal `json:"profitLoss"`
}

type AnalyticsResponse struct {
	TotalProfitLoss decimal.Decimal  `json:"totalProfitLoss"`
	TotalTrades     int64            `json:"totalTrades"`
	WinningTrades   int64            `json:"winningTrades"`
	LosingTrades    int64            `json:"losingTrades"`
	WinRate         float64          `json:"winRate"`
	BestTrade       *TradeResponse   `json:"bestTrade"`
	WorstTrade      *TradeResponse   `json:"worstTrade"`
	MonthlySummary  []MonthlySummary `json:"monthlySummary"`
}
