package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// DefaultTokenTTL is the lifetime of an issued token (3 days).
const DefaultTokenTTL = 259200 * time.Second

// TokenCodec issues and verifies HS256 bearer tokens. It is immutable after
// construction and safe for concurrent use. All instants are UTC.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenCodecOption customises a TokenCodec.
type TokenCodecOption func(*TokenCodec)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret string, ttl time.Duration, opts ...TokenCodecOption) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime of tokens issued by c.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject valid from now until now+TTL.
func (c *TokenCodec) Issue(subject string) (ports.IssuedToken, error) {
	iat := c.now().UTC().Truncate(time.Second)
	exp := iat.Add(c.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return ports.IssuedToken{}, err
	}
	return ports.IssuedToken{Value: signed, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Verify checks signature and expiry and returns the embedded subject.
// Malformed input, a bad signature and expiry are indistinguishable to the
// caller: all of them yield domain.ErrInvalidToken.
func (c *TokenCodec) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return c.now().UTC() }),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
