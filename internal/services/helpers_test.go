package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"tradejournal_backend/internal/config"
	"tradejournal_backend/internal/database"
	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"
	"tradejournal_backend/internal/services/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 1
	cfg.Subscription.FreeTradeLimit = 10
	cfg.Subscription.MonthlyPrice = 299
	cfg.Subscription.YearlyPrice = 2999
	cfg.Subscription.Currency = "INR"
	config.AppConfig = cfg
	return cfg
}

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeGateway stands in for the payment provider. Signatures follow the real
// scheme so verification paths run unmodified.
type fakeGateway struct {
	secret     string
	orderSeq   int
	failOrders bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{secret: "fake-secret"}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*payment.Order, error) {
	if g.failOrders {
		return nil, fmt.Errorf("gateway unavailable")
	}
	g.orderSeq++
	return &payment.Order{
		ID:       fmt.Sprintf("order_fake_%d", g.orderSeq),
		Entity:   "order",
		Amount:   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == g.Sign(orderID, paymentID)
}

func (g *fakeGateway) Sign(orderID, paymentID string) string {
	return payment.SignPayload(g.secret, orderID, paymentID)
}

type testEnv struct {
	db      *gorm.DB
	cfg     *config.Config
	gateway *fakeGateway
	auth    *AuthService
	trades  *TradeService
	stats   *AnalyticsService
	subs    *SubscriptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	db := newTestDB(t)
	gateway := newFakeGateway()

	userRepo := repositories.NewUserRepository()
	tradeRepo := repositories.NewTradeRepository()
	subRepo := repositories.NewSubscriptionRepository()

	subs := NewSubscriptionService(userRepo, subRepo, gateway, cfg)
	return &testEnv{
		db:      db,
		cfg:     cfg,
		gateway: gateway,
		auth:    NewAuthService(userRepo, subRepo),
		trades:  NewTradeService(tradeRepo, subs, cfg),
		stats:   NewAnalyticsService(tradeRepo),
		subs:    subs,
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) *dto.AuthResponse {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), e.db, &dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return resp
}

// upgradeToPro walks the user through the full checkout: order plus verified
// payment.
func (e *testEnv) upgradeToPro(t *testing.T, username string, plan models.PlanType) {
	t.Helper()
	ctx := context.Background()

	order, err := e.subs.CreateOrder(ctx, e.db, username, &dto.PaymentRequest{
		Amount:   decimal.NewFromInt(299),
		Currency: "INR",
		PlanType: string(plan),
	})
	require.NoError(t, err)

	paymentID := "pay_" + order.ID
	err = e.subs.VerifyPayment(ctx, e.db, username, &dto.PaymentVerificationRequest{
		RazorpayOrderID:   order.ID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: e.gateway.Sign(order.ID, paymentID),
	})
	require.NoError(t, err)
}

func (e *testEnv) addTrade(t *testing.T, userID string, req *dto.TradeRequest) *dto.TradeResponse {
	t.Helper()
	resp, err := e.trades.CreateTrade(context.Background(), e.db, userID, req)
	require.NoError(t, err)
	return resp
}

func tradeReq(instrument, tradeType, entry, exit string, qty int, date string) *dto.TradeRequest {
	return &dto.TradeRequest{
		Instrument: instrument,
		TradeType:  tradeType,
		EntryPrice: decimal.RequireFromString(entry),
		ExitPrice:  decimal.RequireFromString(exit),
		Quantity:   qty,
		TradeDate:  date,
	}
}
