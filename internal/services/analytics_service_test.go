package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsWithNoTrades(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "trader")

	resp, err := env.stats.GetAnalytics(env.db, user.UserID)
	require.NoError(t, err)

	assert.Zero(t, resp.TotalTrades)
	assert.True(t, resp.TotalProfitLoss.IsZero())
	assert.Zero(t, resp.WinningTrades)
	assert.Zero(t, resp.LosingTrades)
	assert.Equal(t, 0.0, resp.WinRate)
	assert.Nil(t, resp.BestTrade)
	assert.Nil(t, resp.WorstTrade)
	assert.Empty(t, resp.MonthlySummary)
}

func TestAnalyticsSummary(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "trader")

	// +100
	env.addTrade(t, user.UserID, tradeReq("NIFTY", "BUY", "100", "110", 10, "2024-03-10"))
	// +50
	env.addTrade(t, user.UserID, tradeReq("BANKNIFTY", "SELL", "50", "40", 5, "2024-03-20"))

	resp, err := env.stats.GetAnalytics(env.db, user.UserID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.TotalTrades)
	assert.True(t, resp.TotalProfitLoss.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(2), resp.WinningTrades)
	assert.Equal(t, int64(0), resp.LosingTrades)
	assert.Equal(t, 100.0, resp.WinRate)

	require.NotNil(t, resp.BestTrade)
	assert.Equal(t, "NIFTY", resp.BestTrade.Instrument)
	require.NotNil(t, resp.WorstTrade)
	assert.Equal(t, "BANKNIFTY", resp.WorstTrade.Instrument)
}

func TestAnalyticsBreakEvenTradesCountNeither(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "trader")

	env.addTrade(t, user.UserID, tradeReq("WIN", "BUY", "100", "110", 1, "2024-03-01"))
	env.addTrade(t, user.UserID, tradeReq("FLAT", "BUY", "100", "100", 1, "2024-03-02"))
	env.addTrade(t, user.UserID, tradeReq("LOSS", "BUY", "110", "100", 1, "2024-03-03"))

	resp, err := env.stats.GetAnalytics(env.db, user.UserID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalTrades)
	assert.Equal(t, int64(1), resp.WinningTrades)
	assert.Equal(t, int64(1), resp.LosingTrades)
	// 1 win out of 3 trades, rounded to two decimals.
	assert.Equal(t, 33.33, resp.WinRate)
	assert.True(t, resp.TotalProfitLoss.IsZero())
}

func TestAnalyticsMonthlyBuckets(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "trader")

	env.addTrade(t, user.UserID, tradeReq("JAN-1", "BUY", "100", "110", 1, "2024-01-05")) // +10
	env.addTrade(t, user.UserID, tradeReq("JAN-2", "BUY", "110", "100", 1, "2024-01-25")) // -10
	env.addTrade(t, user.UserID, tradeReq("MAR-1", "BUY", "100", "150", 1, "2024-03-15")) // +50
	env.addTrade(t, user.UserID, tradeReq("DEC-1", "BUY", "100", "120", 1, "2023-12-31")) // +20

	resp, err := env.stats.GetAnalytics(env.db, user.UserID)
	require.NoError(t, err)
	require.Len(t, resp.MonthlySummary, 3)

	// Newest month first; every trade lands in exactly one bucket.
	assert.Equal(t, "2024-03", resp.MonthlySummary[0].Month)
	assert.Equal(t, int64(1), resp.MonthlySummary[0].TradeCount)
	assert.True(t, resp.MonthlySummary[0].ProfitLoss.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, "2024-01", resp.MonthlySummary[1].Month)
	assert.Equal(t, int64(2), resp.MonthlySummary[1].TradeCount)
	assert.True(t, resp.MonthlySummary[1].ProfitLoss.IsZero())

	assert.Equal(t, "2023-12", resp.MonthlySummary[2].Month)
	assert.Equal(t, int64(1), resp.MonthlySummary[2].TradeCount)
	assert.True(t, resp.MonthlySummary[2].ProfitLoss.Equal(decimal.NewFromInt(20)))
}

func TestAnalyticsScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	env.addTrade(t, alice.UserID, tradeReq("NIFTY", "BUY", "100", "110", 1, "2024-03-01"))

	resp, err := env.stats.GetAnalytics(env.db, bob.UserID)
	require.NoError(t, err)
	assert.Zero(t, resp.TotalTrades)
}
