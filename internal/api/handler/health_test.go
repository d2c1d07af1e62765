package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/seunegocio/marketplace/internal/core/domain"
)

func TestReadiness_AllHealthy(t *testing.T) {
	e := newEcho()
	h := NewReadinessHandler(
		DependencyCheck{Name: "mongodb", Ping: func(context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Ping: func(context.Context) error { return nil }},
	)

	c, rec := newContext(e, http.MethodGet, "/health/ready", "", domain.Anonymous)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	e := newEcho()
	h := NewReadinessHandler(
		DependencyCheck{Name: "mongodb", Ping: func(context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	)

	c, rec := newContext(e, http.MethodGet, "/health/ready", "", domain.Anonymous)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	decode(t, rec, &resp)
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
