package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func statusFor(err error) int {
	var (
		verr *domain.ValidationError
		perr *domain.PersistenceError
		cerr *domain.ConfigurationError
		nerr *domain.NotificationError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrProductUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPaymentMethodUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.As(err, &cerr):
		return http.StatusServiceUnavailable
	case errors.As(err, &perr):
		return http.StatusBadGateway
	case errors.As(err, &nerr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
