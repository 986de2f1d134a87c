package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/storefront/shop-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", domain.NewValidationError("password", "password length must be at least 8 characters long"), http.StatusBadRequest, "password length must be at least 8 characters long"},
		{"user exists", fmt.Errorf("create user: %w", domain.ErrUserExists), http.StatusBadRequest, "this user is already exist"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid username or password"},
		{"no token", domain.ErrNoToken, http.StatusUnauthorized, "no token provided"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{"not allowed", domain.ErrNotAllowed, http.StatusForbidden, "not allowed"},
		{"only admin", domain.ErrOnlyAdmin, http.StatusForbidden, "only admin"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"malformed product id", fmt.Errorf("%w: %w", domain.ErrProductNotFound, domain.ErrMalformedID), http.StatusNotFound, "product not found"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNoToken, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
