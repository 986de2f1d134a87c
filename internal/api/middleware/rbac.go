package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
)

// RequireAdmin authenticates the caller and rejects non-admins.
func (g *Gate) RequireAdmin(c echo.Context) error {
	id, err := g.RequireToken(c)
	if err != nil {
		return err
	}
	if !id.IsAdmin {
		return deny(domain.ErrOnlyAdmin)
	}
	return nil
}

// RequireSelfOrAdmin authenticates the caller and allows the request only
// when the caller is targetID or an admin.
func (g *Gate) RequireSelfOrAdmin(c echo.Context, targetID string) error {
	id, err := g.RequireToken(c)
	if err != nil {
		return err
	}
	if !id.CanActOn(targetID) {
		return deny(domain.ErrNotAllowed)
	}
	return nil
}

// Admin is the route middleware form of RequireAdmin.
func (g *Gate) Admin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.RequireAdmin(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// SelfOrAdmin guards routes whose path parameter param names the target user.
func (g *Gate) SelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.RequireSelfOrAdmin(c, c.Param(param)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
