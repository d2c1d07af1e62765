package ports

import (
	"context"
	"time"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// IssuedToken is a freshly signed bearer token.
type IssuedToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (IssuedToken, error)
	TTL() time.Duration
}

// TokenVerifier validates a bearer token and returns its subject. Every
// failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// PrincipalResolver turns a token subject into the acting principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, subject string) (domain.Principal, error)
}

// PasswordHasher is a one-way hash with verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token            string
	ExpiresInSeconds int64
	User             *domain.User
}
