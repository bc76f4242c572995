package app_errors

import (
	"errors"
	"net/http"

	"creativeflow/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// StatusCode maps an error returned by a service to an HTTP status.
func StatusCode(err error) int {
	if _, ok := AsValidationError(err); ok {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyCalls):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError writes err in the API error shape. Internal errors are
// logged and replaced by a generic message.
func RespondWithError(ctx *gin.Context, err error) {
	if validationErr, ok := AsValidationError(err); ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validationErr.Fields})
		return
	}

	status := StatusCode(err)
	switch status {
	case http.StatusUnauthorized:
		ctx.JSON(status, gin.H{"error": "Unauthorized"})
	case http.StatusForbidden:
		ctx.JSON(status, gin.H{"error": "Forbidden"})
	case http.StatusInternalServerError:
		logger.GetLogger().Error(
			"request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, gin.H{"error": "Internal server error"})
	default:
		ctx.JSON(status, gin.H{"error": err.Error()})
	}
}
