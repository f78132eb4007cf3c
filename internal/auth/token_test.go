package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)

	tok, err := iss.Issue("u1", "driver")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != "driver" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	iss := Issuer{Secret: []byte("s"), TTL: time.Minute, Now: func() time.Time { return issuedAt }}
	tok, err := iss.Issue("u1", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	iss.Now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := iss.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	tok, err := NewIssuer("a", time.Hour).Issue("u1", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := NewIssuer("b", time.Hour).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueWithoutSecret(t *testing.T) {
	if _, err := (Issuer{TTL: time.Hour}).Issue("u1", "user"); err == nil {
		t.Fatalf("expected error without secret")
	}
}
