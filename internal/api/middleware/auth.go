package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/api/metrics"
	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// PrincipalKey is the echo context key holding the request's domain.Principal.
const PrincipalKey = "principal"

// Authenticate resolves the bearer token into a principal and stores it in
// the context. It never rejects: a missing, malformed, expired or orphaned
// token leaves the request anonymous, and the handler decides whether that
// is acceptable.
func Authenticate(verifier ports.TokenVerifier, resolver ports.PrincipalResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, outcome := authenticate(c, verifier, resolver, log)
			metrics.AuthOutcomesTotal.WithLabelValues(outcome).Inc()
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

func authenticate(c echo.Context, verifier ports.TokenVerifier, resolver ports.PrincipalResolver, log zerolog.Logger) (domain.Principal, string) {
	raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if !ok {
		return domain.Anonymous, "anonymous"
	}

	subject, err := verifier.Verify(raw)
	if err != nil {
		return domain.Anonymous, "invalid_token"
	}

	p, err := resolver.Resolve(c.Request().Context(), subject)
	if err != nil {
		log.Debug().Err(err).Str("subject", subject).Msg("token subject not resolved")
		return domain.Anonymous, "unknown_subject"
	}
	return p, "authenticated"
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// PrincipalFrom returns the principal stored by Authenticate, or
// domain.Anonymous when none is present.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Anonymous
	}
	return p
}
