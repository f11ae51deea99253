package handlers

import (
	"fmt"

	"tradejournal_backend/internal/apperrors"
	"tradejournal_backend/internal/logger"
	"tradejournal_backend/internal/middleware"
	"tradejournal_backend/internal/validator"
	"tradejournal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the pieces every handler needs: the validator and the
// helpers for pulling the db handle and the authenticated user out of the
// gin context.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB extracts the *gorm.DB (pool or test transaction) set by
// DBMiddleware. A missing key is a wiring bug, not a request error.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "db key not found in context", "key", dbKey)
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "db in context has wrong type", "type", fmt.Sprintf("%T", val))
		panic("db in context has incorrect type")
	}

	return db
}

// BindAndValidateJSON binds the body and runs struct validation. Returns
// false after writing the error response.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

// BindAndValidateQuery binds query parameters and validates them.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) runValidation(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError writes the error envelope for a service failure.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetAuthenticatedUser returns the user id and username stored by the auth
// middleware. Returns ok=false after writing the 401 response.
func (h *BaseHandler) GetAuthenticatedUser(c *gin.Context) (userID, username string, ok bool) {
	idVal, idOK := c.Get(middleware.ContextUserIDKey)
	nameVal, nameOK := c.Get(middleware.ContextUsernameKey)
	if !idOK || !nameOK {
		apperrors.HandleError(c, apperrors.ErrUnauthenticated)
		return "", "", false
	}

	userID, idOK = idVal.(string)
	username, nameOK = nameVal.(string)
	if !idOK || !nameOK || userID == "" {
		apperrors.HandleError(c, apperrors.ErrUnauthenticated)
		return "", "", false
	}
	return userID, username, true
}
