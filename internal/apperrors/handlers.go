package apperrors

import (
	"net/http"

	"tradejournal_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError maps any error to the standard envelope. Unknown errors are
// wrapped so internals never leak to the caller.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = New(CodeInternalError, "Internal server error", http.StatusInternalServerError).WithError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleValidationError converts gin binding errors into the envelope.
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ErrValidationFailed.WithDetails(err.Error()))
}
