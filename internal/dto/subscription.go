package dto

import (
	"time"

	"tradejournal_backend/internal/models"

	"github.com/shopspring/decimal"
)

type SubscriptionPlanResponse struct {
	PlanID      string                    `json:"planId"`
	PlanName    string                    `json:"planName"`
	PlanType    models.PlanType           `json:"planType"`
	Price       decimal.Decimal           `json:"price"`
	Currency    string                    `json:"currency"`
	Period      models.SubscriptionPeriod `json:"period,omitempty"`
	Description string                    `json:"description"`
	Features    []string                  `json:"features"`
	IsPopular   bool                      `json:"isPopular"`
	Savings     *decimal.Decimal          `json:"savings,omitempty"`
}

type SubscriptionStatusResponse struct {
	PlanType        models.PlanType `json:"planType"`
	IsActive        bool            `json:"isActive"`
	StartDate       *time.Time      `json:"startDate,omitempty"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	NextBillingDate *time.Time      `json:"nextBillingDate,omitempty"`
	CanCancel       bool            `json:"canCancel"`
	RemainingDays   int             `json:"remainingDays"`
	Status          string          `json:"status"` // "ACTIVE" | "EXPIRED"
}
