package handlers

type AppHandlers struct {
	AuthHandler         *AuthHandler
	TradeHandler        *TradeHandler
	AnalyticsHandler    *AnalyticsHandler
	SubscriptionHandler *SubscriptionHandler
	PaymentHandler      *PaymentHandler
}
