package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// TokenHeader carries "<scheme> <token>"; only the second segment is read.
const TokenHeader = "token"

type ctxKey struct{}

// Gate authenticates requests against the token service and enforces the
// admin and self-or-admin rules.
type Gate struct {
	tokens ports.TokenVerifier
}

func NewGate(tokens ports.TokenVerifier) *Gate {
	return &Gate{tokens: tokens}
}

// RequireToken verifies the request token and stores the resulting identity
// on the request context.
func (g *Gate) RequireToken(c echo.Context) (domain.Identity, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
	if raw == "" {
		return domain.Identity{}, deny(domain.ErrNoToken)
	}

	parts := strings.Fields(raw)
	if len(parts) < 2 {
		return domain.Identity{}, deny(domain.ErrInvalidToken)
	}

	id, err := g.tokens.Verify(parts[1])
	if err != nil {
		return domain.Identity{}, deny(domain.ErrInvalidToken)
	}

	req := c.Request()
	c.SetRequest(req.WithContext(WithIdentity(req.Context(), id)))
	return id, nil
}

// Token is the route middleware form of RequireToken.
func (g *Gate) Token() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := g.RequireToken(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity stored by the gate, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return id, ok
}

// deny records the rejection and returns err unchanged.
func deny(err error) error {
	reason := "invalid_token"
	switch {
	case errors.Is(err, domain.ErrNoToken):
		reason = "no_token"
	case errors.Is(err, domain.ErrNotAllowed):
		reason = "not_allowed"
	case errors.Is(err, domain.ErrOnlyAdmin):
		reason = "only_admin"
	}
	metrics.AuthDenialsTotal.WithLabelValues(reason).Inc()
	return err
}
