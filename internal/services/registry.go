package services

type ServiceContainer struct {
	AuthService         *AuthService
	TradeService        *TradeService
	AnalyticsService    *AnalyticsService
	SubscriptionService *SubscriptionService
}
