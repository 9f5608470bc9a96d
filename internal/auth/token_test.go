package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.TeamID != "team-1" {
		t.Errorf("expected team id %q, got %q", "team-1", claims.TeamID)
	}
	if claims.TeamName != "Atolye Robotics" {
		t.Errorf("expected team name %q, got %q", "Atolye Robotics", claims.TeamName)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	base := time.Now()
	issuer.now = func() time.Time { return base }

	token, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	// Still valid just before expiry.
	issuer.now = func() time.Time { return base.Add(29 * time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("Verify() before expiry error: %v", err)
	}

	// Expired after the TTL passes.
	issuer.now = func() time.Time { return base.Add(31 * time.Minute) }
	_, err = issuer.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", 30*time.Minute)
	other := NewTokenIssuer("secret-b", 30*time.Minute)

	token, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	_, err = other.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	if issuer.ttl != DefaultTokenTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTokenTTL, issuer.ttl)
	}
}
