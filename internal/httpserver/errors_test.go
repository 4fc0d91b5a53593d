package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"umrah-storefront/internal/commerce"
	"umrah-storefront/internal/domain"
	customersvc "umrah-storefront/internal/service/customer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: variantId required", domain.ErrInvalidInput), http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"bad credentials", customersvc.ErrInvalidCredentials, http.StatusUnauthorized},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict},
		{"platform user error", &commerce.UserError{Message: "Invalid"}, http.StatusUnprocessableEntity},
		{"platform down", fmt.Errorf("create remote cart: %w", &commerce.APIError{StatusCode: 503}), http.StatusBadGateway},
		{"lock wait timed out", fmt.Errorf("update session: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := classify(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}
