package identity

import (
	"errors"
	"testing"
	"time"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	raw, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	username, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected username alice, got %q", username)
	}
}

func TestTokensRejectsGarbage(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	if _, err := tokens.Verify("not-a-token"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokensRejectsExpired(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), -time.Minute)

	raw, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := tokens.Verify(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokensRejectsWrongSecret(t *testing.T) {
	issuer := NewTokens([]byte("secret-a"), time.Hour)
	verifier := NewTokens([]byte("secret-b"), time.Hour)

	raw, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}
