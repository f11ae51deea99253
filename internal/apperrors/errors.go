package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the failure class independent of the HTTP mapping.
type ErrorCode string

// AppError is the application error carried from services to the boundary.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches by code and message, so clones produced by WithDetails or
// WithError still compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap keeps the underlying error in the chain.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is and As re-export the stdlib helpers so callers need a single import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid username/email or password", http.StatusUnauthorized)
	ErrUnauthenticated    = New(CodeUnauthenticated, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound          = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrUsernameAlreadyExists = New(CodeUsernameAlreadyExists, "Username already exists", http.StatusConflict)
	ErrEmailAlreadyExists    = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)

	// Trades
	ErrTradeNotFound = New(CodeTradeNotFound, "Trade not found", http.StatusNotFound)
	ErrTradeNotOwned = New(CodeUnauthorized, "Trade does not belong to user", http.StatusForbidden)
	ErrTradeQuota    = New(CodeQuotaExceeded, "Free plan limit reached. Upgrade to PRO for unlimited trades.", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrInvalidTradeType = New(CodeValidationFailed, "Trade type must be BUY or SELL", http.StatusBadRequest)

	// Payments
	ErrGateway          = New(CodeGatewayError, "Payment gateway request failed", http.StatusBadGateway)
	ErrInvalidSignature = New(CodeInvalidSignature, "Payment verification failed: invalid signature", http.StatusBadRequest)
	ErrNoPendingOrder   = New(CodeConflictingOrder, "No pending subscription order for this payment", http.StatusConflict)
	ErrActiveSubExists  = New(CodeConflictingOrder, "An active PRO subscription already exists", http.StatusConflict)
	ErrNothingToCancel  = New(CodeValidationFailed, "No cancellable subscription", http.StatusBadRequest)
)

// Helpers for errors built at the call site.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func GatewayError(err error) *AppError {
	return ErrGateway.WithError(err)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}
