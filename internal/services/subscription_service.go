package services

import (
	"context"
	"math"
	"time"

	"tradejournal_backend/internal/apperrors"
	"tradejournal_backend/internal/config"
	"tradejournal_backend/internal/dto"
	"tradejournal_backend/internal/logger"
	"tradejournal_backend/internal/models"
	"tradejournal_backend/internal/repositories"
	"tradejournal_backend/internal/services/payment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentGateway is the slice of the gateway client the subscription
// lifecycle needs. Satisfied by payment.RazorpayService.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// SubscriptionService owns the entitlement record per user: the plan
// catalog, the checkout/verification lifecycle and the IsProUser predicate
// every quota decision is based on.
type SubscriptionService struct {
	userRepo repositories.UserRepository
	subRepo  repositories.SubscriptionRepository
	gateway  PaymentGateway
	cfg      *config.Config
}

func NewSubscriptionService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	gateway PaymentGateway,
	cfg *config.Config,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo: userRepo,
		subRepo:  subRepo,
		gateway:  gateway,
		cfg:      cfg,
	}
}

// IsProUser is the sole entitlement predicate: a verified, active PRO
// subscription inside its validity window. A missing row means FREE.
func (s *SubscriptionService) IsProUser(db *gorm.DB, userID string) (bool, error) {
	sub, err := s.subRepo.FindByUserID(db, userID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}
	return sub.Entitled(time.Now()), nil
}

// GetPlans returns the static plan catalog. Prices come from configuration,
// the structure never changes at runtime.
func (s *SubscriptionService) GetPlans() []dto.SubscriptionPlanResponse {
	currency := s.cfg.Subscription.Currency
	monthly := decimal.NewFromInt(s.cfg.Subscription.MonthlyPrice)
	yearly := decimal.NewFromInt(s.cfg.Subscription.YearlyPrice)
	savings := monthly.Mul(decimal.NewFromInt(12)).Sub(yearly)

	return []dto.SubscriptionPlanResponse{
		{
			PlanID:      "free",
			PlanName:    "Free Plan",
			PlanType:    models.PlanFree,
			Price:       decimal.Zero,
			Currency:    currency,
			Description: "Perfect for beginners. Track your first trades for free.",
			Features: []string{
				"Up to 10 trades",
				"Basic analytics",
				"Trade history",
				"Email support",
			},
		},
		{
			PlanID:      "pro_monthly",
			PlanName:    "Pro Monthly",
			PlanType:    models.PlanProMonthly,
			Price:       monthly,
			Currency:    currency,
			Period:      models.PeriodMonthly,
			Description: "Unlimited trades and advanced analytics for serious traders.",
			Features: []string{
				"Unlimited trades",
				"Advanced analytics",
				"Export data",
				"Priority support",
			},
		},
		{
			PlanID:      "pro_yearly",
			PlanName:    "Pro Yearly",
			PlanType:    models.PlanProYearly,
			Price:       yearly,
			Currency:    currency,
			Period:      models.PeriodYearly,
			Description: "Best value. Save with the annual subscription.",
			Features: []string{
				"Unlimited trades",
				"Advanced analytics",
				"Export data",
				"Priority support",
			},
			IsPopular: true,
			Savings:   &savings,
		},
	}
}

// GetSubscriptionStatus builds the display status for the user. A user
// without a subscription row reports as FREE and active.
func (s *SubscriptionService) GetSubscriptionStatus(db *gorm.DB, username string) (*dto.SubscriptionStatusResponse, error) {
	user, err := s.findUser(db, username)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if sub == nil {
		return &dto.SubscriptionStatusResponse{
			PlanType:  models.PlanFree,
			IsActive:  true,
			StartDate: &now,
			Status:    "ACTIVE",
		}, nil
	}

	isActive := sub.IsActive && (sub.EndDate == nil || sub.EndDate.After(now))

	remainingDays := 0
	if sub.EndDate != nil && sub.EndDate.After(now) {
		remainingDays = int(math.Floor(sub.EndDate.Sub(now).Hours() / 24))
	}

	status := "EXPIRED"
	if isActive || sub.PlanType == models.PlanFree {
		status = "ACTIVE"
	}

	return &dto.SubscriptionStatusResponse{
		PlanType:        sub.PlanType,
		IsActive:        isActive,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		NextBillingDate: sub.EndDate,
		CanCancel:       sub.PlanType != models.PlanFree && isActive,
		RemainingDays:   remainingDays,
		Status:          status,
	}, nil
}

// CancelSubscription removes entitlement without erasing billing history:
// the row stays, endDate stays, only isActive flips. "Cancel" means "let
// expire", never "revoke now".
func (s *SubscriptionService) CancelSubscription(db *gorm.DB, username string) error {
	user, err := s.findUser(db, username)
	if err != nil {
		return err
	}

	sub, err := s.subRepo.FindByUserID(db, user.ID)
	if err != nil {
		return err
	}
	if sub == nil || sub.PlanType == models.PlanFree || !sub.IsActive {
		return apperrors.ErrNothingToCancel
	}

	sub.IsActive = false
	return s.subRepo.Save(db, sub)
}

// CreateOrder asks the gateway for a payable order and records the pending
// checkout on the user's subscription row.
//
// A checkout over a verified, unexpired PRO subscription is rejected: the
// old behaviour of overwriting the row in place would discard a paid
// validity window the moment an abandoned second checkout was started.
// Overwriting a pending or expired row is still allowed, discarding the
// prior order and payment linkage.
func (s *SubscriptionService) CreateOrder(ctx context.Context, db *gorm.DB, username string, req *dto.PaymentRequest) (*payment.Order, error) {
	user, err := s.findUser(db, username)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch sub.State(now) {
	case models.StateProActive, models.StateProCancelledPendingExpiry:
		return nil, apperrors.ErrActiveSubExists
	}

	order, err := s.gateway.CreateOrder(ctx, req.Amount, req.Currency, "receipt_"+user.ID)
	if err != nil {
		logger.CtxWithError(ctx, "gateway order creation failed", err, "user_id", user.ID)
		return nil, apperrors.GatewayError(err)
	}

	if sub == nil {
		sub = &models.Subscription{UserID: user.ID}
	}

	sub.PlanType = models.PlanType(req.PlanType)
	switch sub.PlanType {
	case models.PlanProYearly:
		sub.SubscriptionPeriod = models.PeriodYearly
	default:
		sub.SubscriptionPeriod = models.PeriodMonthly
	}
	sub.RazorpayOrderID = order.ID
	// The prior payment linkage is discarded; the row is pending again.
	sub.RazorpayPaymentID = ""
	sub.RazorpaySignature = ""

	if err := s.subRepo.Save(db, sub); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "subscription order created",
		"user_id", user.ID, "order_id", order.ID, "plan", string(sub.PlanType))
	return order, nil
}

// VerifyPayment finalizes a checkout. Reading the row, checking the
// signature and activating the plan happen inside one transaction so a
// half-updated subscription can never be observed.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, db *gorm.DB, username string, req *dto.PaymentVerificationRequest) error {
	user, err := s.findUser(db, username)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		sub, err := s.subRepo.FindByUserID(tx, user.ID)
		if err != nil {
			return err
		}
		if sub == nil || sub.RazorpayOrderID == "" || sub.RazorpayOrderID != req.RazorpayOrderID {
			return apperrors.ErrNoPendingOrder
		}

		if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			return apperrors.ErrInvalidSignature
		}

		now := time.Now()
		var end time.Time
		if sub.SubscriptionPeriod == models.PeriodYearly {
			end = now.AddDate(1, 0, 0)
		} else {
			end = now.AddDate(0, 1, 0)
		}

		sub.RazorpayPaymentID = req.RazorpayPaymentID
		sub.RazorpaySignature = req.RazorpaySignature
		sub.StartDate = &now
		sub.EndDate = &end
		sub.IsActive = true

		if err := s.subRepo.Save(tx, sub); err != nil {
			return err
		}

		logger.CtxInfo(ctx, "subscription activated",
			"user_id", user.ID, "plan", string(sub.PlanType), "end_date", end)
		return nil
	})
}

func (s *SubscriptionService) findUser(db *gorm.DB, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
