package validator

import (
	"log"
	"strings"

	"tradejournal_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags. A failed
// registration is a startup error, not a request error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-trade-type': BUY or SELL, case-insensitive (normalized later)
	mustRegister("is-trade-type", validateTradeType)

	// 'is-plan-type': one of the payable plans
	mustRegister("is-plan-type", validatePayablePlanType)
}

func validateTradeType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	switch models.TradeType(strings.ToUpper(value)) {
	case models.TradeTypeBuy, models.TradeTypeSell:
		return true
	default:
		return false
	}
}

// Only the paid tiers can be checked out; FREE is never purchased.
func validatePayablePlanType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PlanType(value) {
	case models.PlanProMonthly, models.PlanProYearly:
		return true
	default:
		return false
	}
}
