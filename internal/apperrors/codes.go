package apperrors

// Error codes grouped by domain.
const (
	// Authentication / authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUserNotFound  ErrorCode = "USER_NOT_FOUND"
	CodeTradeNotFound ErrorCode = "TRADE_NOT_FOUND"

	// Business rules
	CodeUsernameAlreadyExists ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeEmailAlreadyExists    ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeQuotaExceeded         ErrorCode = "QUOTA_EXCEEDED"

	// Payments
	CodeGatewayError     ErrorCode = "GATEWAY_ERROR"
	CodeInvalidSignature ErrorCode = "INVALID_SIGNATURE"
	CodeConflictingOrder ErrorCode = "CONFLICTING_ORDER"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
