package services

import (
	"math"
	"sort"

	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsService aggregates the trade ledger on demand. It keeps no
// cache: every call reflects the latest trade set.
type AnalyticsService struct {
	tradeRepo repositories.TradeRepository
}

func NewAnalyticsService(tradeRepo repositories.TradeRepository) *AnalyticsService {
	return &AnalyticsService{tradeRepo: tradeRepo}
}

// GetAnalytics computes the summary statistics over all of the user's
// trades. Trades with a profit/loss of exactly zero count as neither
// winning nor losing.
func (s *AnalyticsService) GetAnalytics(db *gorm.DB, userID string) (*dto.AnalyticsResponse, error) {
	trades, err := s.tradeRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		TotalProfitLoss: decimal.Zero,
		TotalTrades:     int64(len(trades)),
		MonthlySummary:  []dto.MonthlySummary{},
	}

	var best, worst *models.Trade
	for i := range trades {
		t := &trades[i]
		resp.TotalProfitLoss = resp.TotalProfitLoss.Add(t.ProfitLoss)

		switch t.ProfitLoss.Sign() {
		case 1:
			resp.WinningTrades++
		case -1:
			resp.LosingTrades++
		}

		// First found wins ties, matching the store's iteration order.
		if best == nil || t.ProfitLoss.GreaterThan(best.ProfitLoss) {
			best = t
		}
		if worst == nil || t.ProfitLoss.LessThan(worst.ProfitLoss) {
			worst = t
		}
	}

	if resp.TotalTrades > 0 {
		rate := float64(resp.WinningTrades) / float64(resp.TotalTrades) * 100.0
		resp.WinRate = math.Round(rate*100.0) / 100.0
	}

	if best != nil {
		resp.BestTrade = dto.NewTradeResponse(best)
	}
	if worst != nil {
		resp.WorstTrade = dto.NewTradeResponse(worst)
	}

	resp.MonthlySummary = monthlySummary(trades)
	return resp, nil
}

// monthlySummary buckets trades by calendar year-month of the trade date,
// newest month first. Every trade lands in exactly one bucket.
func monthlySummary(trades []models.Trade) []dto.MonthlySummary {
	byMonth := make(map[string]*dto.MonthlySummary)
	for i := range trades {
		month := trades[i].TradeDate.Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &dto.MonthlySummary{Month: month, ProfitLoss: decimal.Zero}
			byMonth[month] = bucket
		}
		bucket.TradeCount++
		bucket.ProfitLoss = bucket.ProfitLoss.Add(trades[i].ProfitLoss)
	}

	summary := make([]dto.MonthlySummary, 0, len(byMonth))
	for _, bucket := range byMonth {
		summary = append(summary, *bucket)
	}

	// Lexicographic sort on "YYYY-MM" is chronological.
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Month > summary[j].Month
	})
	return summary
}
