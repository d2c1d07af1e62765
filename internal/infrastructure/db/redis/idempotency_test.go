package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seunegocio/marketplace/internal/core/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func TestIdempotencyStore_Defaults(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	if s.ttl != defaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got %s", s.ttl)
	}
	if got := s.key("cart:add:7", "req-1"); got != "idem:cart:add:7:req-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestIdempotencyStore_ClaimUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewIdempotencyStore(client, time.Minute)
	if _, err := s.Claim(context.Background(), "cart:add:7", "req-1"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}

func TestIdempotencyStore_ReleaseUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewIdempotencyStore(client, time.Minute)
	if err := s.Release(context.Background(), "cart:add:7", "req-1"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil || client != nil {
		t.Fatalf("expected connect to fail, got client=%v err=%v", client, err)
	}
}
