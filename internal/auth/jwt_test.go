package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken(42, 2)

	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)

	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}

	if claims.UserID != 42 || claims.RoleID != 2 {
		t.Fatalf("claims = %+v, want uid 42 rid 2", claims)
	}
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", 15*time.Minute)
	verifier := NewManager("secret-b", 15*time.Minute)

	token, err := issuer.GenerateAccessToken(42, 2)

	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken(42, 2)

	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute)

	if _, err := m.VerifyAccessToken("not.a.token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}
