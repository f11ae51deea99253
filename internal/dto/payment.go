package dto

import "github.com/shopspring/decimal"

type PaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency string          `json:"currency" validate:"required,len=3"`
	PlanType string          `json:"planType" validate:"required,is-plan-type"`
}

type PaymentVerificationRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required"`
}
