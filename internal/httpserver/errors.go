package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umrah-storefront/internal/commerce"
	"umrah-storefront/internal/domain"
	"umrah-storefront/internal/logger"
	contactsvc "umrah-storefront/internal/service/contact"
	customersvc "umrah-storefront/internal/service/customer"
)

// writeError maps service errors to {"error": msg} responses.
func writeError(c *gin.Context, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		logger.FromGin(c).Error("request failed", zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	var (
		userErr *commerce.UserError
		apiErr  *commerce.APIError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, customersvc.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, "an account with this email already exists"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "session was modified concurrently, please retry"
	case errors.Is(err, contactsvc.ErrCaptchaRejected):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &userErr):
		return http.StatusUnprocessableEntity, userErr.Message
	case errors.As(err, &apiErr), errors.Is(err, commerce.ErrInvalidResponse), errors.Is(err, commerce.ErrCartNotFound):
		return http.StatusBadGateway, "commerce platform unavailable, please try again"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request timed out, please retry"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
