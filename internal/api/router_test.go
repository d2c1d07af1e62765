package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/service"
)

type roleResolver map[string]domain.Role

func (r roleResolver) Resolve(_ context.Context, subject string) (domain.Principal, error) {
	role, ok := r[subject]
	if !ok {
		return domain.Anonymous, domain.ErrUserNotFound
	}
	return domain.Principal{ID: subject, Role: role}, nil
}

func newTestRouter(t *testing.T) (*echo.Echo, *service.TokenCodec) {
	t.Helper()
	codec := service.NewTokenCodec("router-test-secret-0123456789", time.Hour)
	e := NewRouter(Dependencies{
		Tokens:     codec,
		Identities: roleResolver{"1": domain.RoleBuyer, "2": domain.RoleSeller},
		Logger:     zerolog.Nop(),
	})
	return e, codec
}

func serve(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	e, _ := newTestRouter(t)

	for _, target := range []string{"/health", "/v1/businesses/categories", "/metrics"} {
		if rec := serve(e, http.MethodGet, target, "", ""); rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestRouter_CartRequiresAuthentication(t *testing.T) {
	e, codec := newTestRouter(t)

	if rec := serve(e, http.MethodGet, "/v1/cart/me", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/v1/cart/me", "garbage", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: expected 401, got %d", rec.Code)
	}

	orphan, err := codec.Issue("99")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if rec := serve(e, http.MethodGet, "/v1/cart/me", orphan.Value, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user: expected 401, got %d", rec.Code)
	}
}

func TestRouter_ItemWritesRequireSeller(t *testing.T) {
	e, codec := newTestRouter(t)

	buyer, err := codec.Issue("1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec := serve(e, http.MethodPost, "/v1/items", buyer.Value,
		`{"business_id":"b1","name":"x","description":"y","price":1,"offer_type":"PRODUCT"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("buyer: expected 403, got %d", rec.Code)
	}
}
