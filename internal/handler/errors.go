package handler

import (
	"errors"
	"net/http"

	"barterhub/internal/transport/httpdto"
	barter_errors "barterhub/pkg/errors"
	"barterhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// statusFor maps the core's error taxonomy to transport responses. The
// services own the error kinds; this is the single place HTTP semantics are
// decided.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, barter_errors.ErrSelfInterest):
		return http.StatusUnprocessableEntity, "SELF_INTEREST"
	case errors.Is(err, barter_errors.ErrDuplicateInterest):
		return http.StatusConflict, "DUPLICATE_INTEREST"
	case errors.Is(err, barter_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, barter_errors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, barter_errors.ErrBadStatus):
		return http.StatusUnprocessableEntity, "BAD_STATUS"
	case errors.Is(err, barter_errors.ErrAlreadyRealized):
		return http.StatusConflict, "ALREADY_REALIZED"
	case errors.Is(err, barter_errors.ErrAlreadyCompleted):
		return http.StatusConflict, "ALREADY_COMPLETED"
	case errors.Is(err, barter_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, barter_errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, barter_errors.ErrAlreadyExists):
		return http.StatusConflict, "ALREADY_EXISTS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		if l := logger.GetGlobalLogger(); l != nil {
			l.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, httpdto.NewErrorResponse("internal error", code))
		return
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}
