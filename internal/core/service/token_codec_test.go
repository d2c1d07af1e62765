package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

// fakeClock is a settable time source shared by issue and verify.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCodec(clock *fakeClock) *TokenCodec {
	return NewTokenCodec("test-secret", DefaultTokenTTL, WithClock(clock.Now))
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	for _, subject := range []string{"42", "1", "65f1c0ffee0000000000abcd"} {
		issued, err := codec.Issue(subject)
		if err != nil {
			t.Fatalf("issue %q: %v", subject, err)
		}
		got, err := codec.Verify(issued.Value)
		if err != nil {
			t.Fatalf("verify %q: %v", subject, err)
		}
		if got != subject {
			t.Fatalf("expected subject %q, got %q", subject, got)
		}
	}
}

func TestTokenCodec_IssueSetsExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	issued, err := codec.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !issued.IssuedAt.Equal(clock.t) {
		t.Errorf("issued_at: got %v, want %v", issued.IssuedAt, clock.t)
	}
	if got := issued.ExpiresAt.Sub(issued.IssuedAt); got != 259200*time.Second {
		t.Errorf("ttl: got %v, want 72h", got)
	}
	if codec.TTL() != DefaultTokenTTL {
		t.Errorf("TTL(): got %v", codec.TTL())
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	issued, err := codec.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(DefaultTokenTTL - time.Second)
	if _, err := codec.Verify(issued.Value); err != nil {
		t.Fatalf("token should still be valid one second before expiry: %v", err)
	}

	clock.Advance(time.Second)
	if _, err := codec.Verify(issued.Value); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken at expiry, got %v", err)
	}
}

// Scenario: token for subject "42" is rejected once the 3-day window passed.
func TestTokenCodec_ExpiredAfterThreeDays(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	issued, err := codec.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock.Advance(72*time.Hour + time.Minute)

	subject, err := codec.Verify(issued.Value)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got subject=%q err=%v", subject, err)
	}
	if subject != "" {
		t.Fatalf("expected empty subject, got %q", subject)
	}
}

func TestTokenCodec_TamperedTokenRejected(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newTestCodec(clock)

	issued, err := codec.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	raw := issued.Value
	lastSig := len(raw) - 1

	for i := 0; i < len(raw); i++ {
		// The final base64url character of the signature carries padding
		// bits that a lenient decoder may ignore.
		if raw[i] == '.' || i == lastSig {
			continue
		}
		replacement := byte('A')
		if raw[i] == 'A' {
			replacement = 'B'
		}
		tampered := raw[:i] + string(replacement) + raw[i+1:]

		if _, err := codec.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("tampered token at position %d was accepted", i)
		}
	}
}

func TestTokenCodec_RejectsForeignSecret(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer := NewTokenCodec("old-secret", DefaultTokenTTL, WithClock(clock.Now))
	verifier := NewTokenCodec("rotated-secret", DefaultTokenTTL, WithClock(clock.Now))

	issued, err := issuer.Issue("42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(issued.Value); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected rotation to invalidate token, got %v", err)
	}
}

func TestTokenCodec_RejectsMalformedInput(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c", strings.Repeat(".", 2)} {
		if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestTokenCodec_RejectsOtherAlgorithmsAndMissingClaims(t *testing.T) {
	now := time.Now()
	codec := NewTokenCodec("secret", time.Hour)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "42",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for name, raw := range map[string]string{"hs512": hs512, "no exp": noExp, "no sub": noSub} {
		if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewTokenCodec_DefaultsTTL(t *testing.T) {
	if got := NewTokenCodec("s", 0).TTL(); got != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", got)
	}
}
