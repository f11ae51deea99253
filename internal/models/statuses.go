package models

type TradeType string
type PlanType string
type SubscriptionPeriod string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"

	PlanFree       PlanType = "FREE"
	PlanProMonthly PlanType = "PRO_MONTHLY"
	PlanProYearly  PlanType = "PRO_YEARLY"

	PeriodMonthly SubscriptionPeriod = "MONTHLY"
	PeriodYearly  SubscriptionPeriod = "YEARLY"
)

// IsPro reports whether the plan is one of the paid tiers.
func (p PlanType) IsPro() bool {
	return p == PlanProMonthly || p == PlanProYearly
}
