package models

import "time"

type Subscription struct {
	BaseModel
	UserID             string             `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	PlanType           PlanType           `gorm:"type:varchar(20);default:'FREE'" json:"planType"`
	IsActive           bool               `gorm:"default:true" json:"isActive"`
	SubscriptionPeriod SubscriptionPeriod `gorm:"type:varchar(10)" json:"subscriptionPeriod,omitempty"`
	StartDate          *time.Time         `json:"startDate,omitempty"`
	EndDate            *time.Time         `json:"endDate,omitempty"`
	RazorpayOrderID    string             `gorm:"index" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID  string             `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature  string             `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SubscriptionState is the explicit entitlement state of a user. The row
// itself only stores plan, activity flag and dates; the state is always
// derived so the transitions stay testable in one place.
type SubscriptionState string

const (
	// StateFreeActive is also the implicit state when no row exists.
	StateFreeActive SubscriptionState = "FREE_ACTIVE"
	// StateProPending means an order was created but payment is unverified.
	StateProPending SubscriptionState = "PRO_PENDING"
	StateProActive  SubscriptionState = "PRO_ACTIVE"
	StateProExpired SubscriptionState = "PRO_EXPIRED"
	// StateProCancelledPendingExpiry keeps the paid window but no longer
	// grants entitlement: isProUser is false the moment the user cancels.
	StateProCancelledPendingExpiry SubscriptionState = "PRO_CANCELLED_PENDING_EXPIRY"
)

// State derives the entitlement state at the given instant.
func (s *Subscription) State(now time.Time) SubscriptionState {
	if s == nil || !s.PlanType.IsPro() {
		return StateFreeActive
	}
	if s.RazorpayPaymentID == "" {
		return StateProPending
	}
	if s.EndDate != nil && !s.EndDate.After(now) {
		return StateProExpired
	}
	if !s.IsActive {
		return StateProCancelledPendingExpiry
	}
	return StateProActive
}

// Entitled reports whether the subscription grants unrestricted trade
// creation at the given instant: a paid plan, verified, still active and
// inside its validity window. A pending checkout does not grant anything.
func (s *Subscription) Entitled(now time.Time) bool {
	return s.State(now) == StateProActive
}
