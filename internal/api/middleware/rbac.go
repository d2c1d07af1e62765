package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// RequireAuthenticated rejects anonymous requests with 401. Ownership is
// still checked by the services; this only short-circuits routes that make
// no sense without a caller.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c).IsAnonymous() {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireRole rejects principals whose role is not among roles with 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p.IsAnonymous() {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[p.Role]; !ok {
				return &domain.AccessDeniedError{Resource: "route", Reason: "role " + string(p.Role) + " not allowed"}
			}
			return next(c)
		}
	}
}
