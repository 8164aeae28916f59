package auth_test

import (
	"testing"
	"time"

	"github.com/voyago/travelbook/pkg/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.NewAccessToken(42, "alice@example.com", "partner", "api", "secret", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := auth.Parse(token, "secret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Sub != 42 {
		t.Errorf("sub = %d, want 42", claims.Sub)
	}
	if claims.Role != "partner" {
		t.Errorf("role = %q, want partner", claims.Role)
	}
	if claims.Scope != "api" {
		t.Errorf("scope = %q, want api", claims.Scope)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := auth.NewAccessToken(1, "a@example.com", "customer", "api", "secret", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := auth.Parse(token, "other-secret"); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	token, err := auth.NewAccessToken(1, "a@example.com", "customer", "api", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := auth.Parse(token, "secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}
