package auth

import (
	"context"
	"testing"
)

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	if PrincipalID(ctx) != "" || SessionID(ctx) != "" {
		t.Fatal("Expected empty principal on a bare context")
	}

	ctx = SetPrincipal(ctx, "p1", "s1")
	if PrincipalID(ctx) != "p1" {
		t.Errorf("Expected p1, got %q", PrincipalID(ctx))
	}
	if SessionID(ctx) != "s1" {
		t.Errorf("Expected s1, got %q", SessionID(ctx))
	}

	ctx = SetRequestID(ctx, "req-1")
	if RequestID(ctx) != "req-1" || PrincipalID(ctx) != "p1" {
		t.Error("Expected request id alongside principal")
	}
}
