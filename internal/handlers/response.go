package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/conduit-backend/internal/domain"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusUnprocessableEntity
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodePermissionDenied:
		return http.StatusForbidden
	case domain.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domain.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps a domain error onto the wire envelope. Internal and
// config errors hide their message so storage details never leak.
func RespondError(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	status := statusForCode(code)

	msg := "internal error"
	var details map[string]string
	var derr *domain.Error
	if errors.As(err, &derr) && code != domain.CodeInternal && code != domain.CodeConfig {
		msg = derr.Message
		details = derr.Details
	}

	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Code:    string(code),
			Message: msg,
			Details: details,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
