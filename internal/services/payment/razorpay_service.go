package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"tradejournal_backend/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Order is the gateway's order object, returned to the caller verbatim.
type Order struct {
	ID       string `json:"id"`
	Entity   string `json:"entity,omitempty"`
	Amount   int64  `json:"amount"` // smallest currency subunit (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status"`
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type gatewayErrorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// RazorpayService talks to the Razorpay Orders API and implements the
// payment-signature scheme. It is the only component with outbound I/O
// besides the database.
type RazorpayService struct {
	keyID     string
	keySecret string
	client    *resty.Client
}

func NewRazorpayService(cfg *config.Config) *RazorpayService {
	client := resty.New().
		SetBaseURL(cfg.Razorpay.BaseURL).
		SetBasicAuth(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret).
		SetHeader("Content-Type", "application/json")

	return &RazorpayService{
		keyID:     cfg.Razorpay.KeyID,
		keySecret: cfg.Razorpay.KeySecret,
		client:    client,
	}
}

// CreateOrder creates a payable order for the amount. The gateway expects
// the smallest currency subunit, so the rupee amount is multiplied by 100.
// The call is a single synchronous request; no retries.
func (s *RazorpayService) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*Order, error) {
	body := orderRequest{
		Amount:   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: currency,
		Receipt:  receipt,
	}

	var order Order
	var gwErr gatewayErrorBody

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&order).
		SetError(&gwErr).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order rejected (%d): %s", resp.StatusCode(), gwErr.Error.Description)
	}
	return &order, nil
}

// VerifySignature checks the payment signature the gateway attaches to a
// successful checkout: hex HMAC-SHA256 over "orderID|paymentID" keyed with
// the shared secret. Comparison is constant-time.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	expected := SignPayload(s.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayload computes the gateway signature for an order/payment pair.
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
