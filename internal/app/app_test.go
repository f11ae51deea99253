package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tradejournal_backend/internal/config"
	"tradejournal_backend/internal/database"
	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type apiTest struct {
	t      *testing.T
	router *gin.Engine
	cfg    *config.Config
}

// newAPITest spins up the full router on an in-memory database with a fake
// payment gateway behind the configured base URL.
func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gatewaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payment.Order{
			ID:       fmt.Sprintf("order_e2e_%d", testDBSeq.Add(1)),
			Entity:   "order",
			Amount:   body.Amount,
			Currency: body.Currency,
			Receipt:  body.Receipt,
			Status:   "created",
		})
	}))
	t.Cleanup(gatewaySrv.Close)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "e2e-secret"
	cfg.JWT.TTL = 1
	cfg.Razorpay.KeyID = "rzp_test_key"
	cfg.Razorpay.KeySecret = "e2e-gateway-secret"
	cfg.Razorpay.BaseURL = gatewaySrv.URL
	cfg.Subscription.FreeTradeLimit = 10
	cfg.Subscription.MonthlyPrice = 299
	cfg.Subscription.YearlyPrice = 2999
	cfg.Subscription.Currency = "INR"
	config.AppConfig = cfg

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return &apiTest{
		t:      t,
		router: SetupRouter(cfg, db),
		cfg:    cfg,
	}
}

func (a *apiTest) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		// Some endpoints return arrays; those callers decode themselves.
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func (a *apiTest) register(username string) string {
	a.t.Helper()
	rec, body := a.request(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(a.t, token)
	return token
}

func (a *apiTest) signPayment(orderID, paymentID string) string {
	return payment.SignPayload(a.cfg.Razorpay.KeySecret, orderID, paymentID)
}

func TestAPIRegisterAndLogin(t *testing.T) {
	api := newAPITest(t)

	api.register("alice")

	rec, body := api.request(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "FREE", body["planType"])

	rec, body = api.request(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errObj, _ := body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "INVALID_CREDENTIALS", errObj["code"])
}

func TestAPITradesRequireAuth(t *testing.T) {
	api := newAPITest(t)

	rec, _ := api.request(http.MethodGet, "/api/v1/trades", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = api.request(http.MethodGet, "/api/v1/trades", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPITradeLifecycle(t *testing.T) {
	api := newAPITest(t)
	token := api.register("trader")

	rec, body := api.request(http.MethodPost, "/api/v1/trades", token, map[string]interface{}{
		"instrument": "NIFTY",
		"tradeType":  "BUY",
		"entryPrice": 100,
		"exitPrice":  110,
		"quantity":   10,
		"tradeDate":  "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "100", body["profitLoss"])
	tradeID, _ := body["id"].(string)
	require.NotEmpty(t, tradeID)

	rec, _ = api.request(http.MethodGet, "/api/v1/trades", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trades []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	require.Len(t, trades, 1)

	rec, _ = api.request(http.MethodGet, "/api/v1/trades/date-range?start_date=2024-03-01&end_date=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	assert.Len(t, trades, 1)

	rec, _ = api.request(http.MethodGet, "/api/v1/trades/date-range?start_date=2024-04-01&end_date=2024-04-30", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	assert.Empty(t, trades)

	rec, body = api.request(http.MethodDelete, "/api/v1/trades/"+tradeID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Trade deleted successfully", body["message"])

	rec, _ = api.request(http.MethodDelete, "/api/v1/trades/"+tradeID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPITradeValidation(t *testing.T) {
	api := newAPITest(t)
	token := api.register("trader")

	rec, body := api.request(http.MethodPost, "/api/v1/trades", token, map[string]interface{}{
		"instrument": "NIFTY",
		"tradeType":  "HOLD",
		"entryPrice": 100,
		"exitPrice":  110,
		"quantity":   10,
		"tradeDate":  "2024-03-15",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errObj, _ := body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])

	rec, _ = api.request(http.MethodPost, "/api/v1/trades", token, map[string]interface{}{
		"instrument": "NIFTY",
		"tradeType":  "BUY",
		"entryPrice": -5,
		"exitPrice":  110,
		"quantity":   10,
		"tradeDate":  "2024-03-15",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPICrossUserDeleteIsForbidden(t *testing.T) {
	api := newAPITest(t)
	aliceToken := api.register("alice")
	bobToken := api.register("bob")

	rec, body := api.request(http.MethodPost, "/api/v1/trades", aliceToken, map[string]interface{}{
		"instrument": "NIFTY",
		"tradeType":  "BUY",
		"entryPrice": 100,
		"exitPrice":  110,
		"quantity":   1,
		"tradeDate":  "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	tradeID, _ := body["id"].(string)

	rec, body = api.request(http.MethodDelete, "/api/v1/trades/"+tradeID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	errObj, _ := body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestAPIQuotaAndUpgradeFlow(t *testing.T) {
	api := newAPITest(t)
	api.cfg.Subscription.FreeTradeLimit = 2
	token := api.register("trader")

	newTrade := func(day int) map[string]interface{} {
		return map[string]interface{}{
			"instrument": "NIFTY",
			"tradeType":  "BUY",
			"entryPrice": 100,
			"exitPrice":  110,
			"quantity":   1,
			"tradeDate":  fmt.Sprintf("2024-03-%02d", day),
		}
	}

	for day := 1; day <= 2; day++ {
		rec, _ := api.request(http.MethodPost, "/api/v1/trades", token, newTrade(day))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := api.request(http.MethodPost, "/api/v1/trades", token, newTrade(3))
	require.Equal(t, http.StatusForbidden, rec.Code)
	errObj, _ := body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "QUOTA_EXCEEDED", errObj["code"])

	// Plans are public.
	rec, _ = api.request(http.MethodGet, "/api/v1/subscription/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plans []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 3)

	// Checkout.
	rec, body = api.request(http.MethodPost, "/api/v1/payment/create-order", token, map[string]interface{}{
		"amount":   299,
		"currency": "INR",
		"planType": "PRO_MONTHLY",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orderID, _ := body["id"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, float64(29900), body["amount"])

	// Pending checkout does not lift the gate.
	rec, _ = api.request(http.MethodPost, "/api/v1/trades", token, newTrade(4))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A tampered signature is rejected.
	rec, body = api.request(http.MethodPost, "/api/v1/payment/verify", token, map[string]interface{}{
		"razorpayOrderId":   orderID,
		"razorpayPaymentId": "pay_1",
		"razorpaySignature": api.signPayment(orderID, "pay_other"),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj, _ = body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "INVALID_SIGNATURE", errObj["code"])

	// The real signature activates the plan.
	rec, body = api.request(http.MethodPost, "/api/v1/payment/verify", token, map[string]interface{}{
		"razorpayOrderId":   orderID,
		"razorpayPaymentId": "pay_1",
		"razorpaySignature": api.signPayment(orderID, "pay_1"),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, body["message"], "Subscription activated")

	rec, body = api.request(http.MethodGet, "/api/v1/subscription/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PRO_MONTHLY", body["planType"])
	assert.Equal(t, "ACTIVE", body["status"])
	assert.Equal(t, true, body["canCancel"])

	// The gate is open now.
	rec, _ = api.request(http.MethodPost, "/api/v1/trades", token, newTrade(5))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// A second checkout over the active plan conflicts.
	rec, body = api.request(http.MethodPost, "/api/v1/payment/create-order", token, map[string]interface{}{
		"amount":   2999,
		"currency": "INR",
		"planType": "PRO_YEARLY",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	errObj, _ = body["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "CONFLICTING_ORDER", errObj["code"])

	// Cancel flips the gate back.
	rec, body = api.request(http.MethodPost, "/api/v1/subscription/cancel", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Subscription cancelled successfully", body["message"])

	rec, _ = api.request(http.MethodPost, "/api/v1/trades", token, newTrade(6))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPIAnalytics(t *testing.T) {
	api := newAPITest(t)
	token := api.register("trader")

	rec, body := api.request(http.MethodGet, "/api/v1/analytics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["totalTrades"])
	assert.Equal(t, float64(0), body["winRate"])

	trades := []map[string]interface{}{
		{"instrument": "NIFTY", "tradeType": "BUY", "entryPrice": 100, "exitPrice": 110, "quantity": 10, "tradeDate": "2024-03-10"},
		{"instrument": "BANKNIFTY", "tradeType": "SELL", "entryPrice": 50, "exitPrice": 40, "quantity": 5, "tradeDate": "2024-03-20"},
	}
	for _, tr := range trades {
		rec, _ := api.request(http.MethodPost, "/api/v1/trades", token, tr)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body = api.request(http.MethodGet, "/api/v1/analytics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["totalTrades"])
	assert.Equal(t, "150", body["totalProfitLoss"])
	assert.Equal(t, float64(100), body["winRate"])

	monthly, _ := body["monthlySummary"].([]interface{})
	require.Len(t, monthly, 1)
	bucket, _ := monthly[0].(map[string]interface{})
	assert.Equal(t, "2024-03", bucket["month"])
	assert.Equal(t, float64(2), bucket["tradeCount"])
}
