package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/seunegocio/marketplace/internal/api/middleware"
	"github.com/seunegocio/marketplace/internal/core/domain"
)

// ctxPrincipal returns the principal resolved by the Authenticate
// middleware and fails fast with domain.ErrUnauthenticated when the request
// is anonymous.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p.IsAnonymous() {
		return domain.Anonymous, domain.ErrUnauthenticated
	}
	return p, nil
}

// bindAndValidate decodes the request body into req and runs its validate
// tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("", "invalid payload")
	}
	return c.Validate(req)
}
