package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/service"
	"github.com/voyago/travelbook/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMockUserRepo()
	svc := service.NewAuthService(users, testConfig())
	ctx := context.Background()

	resp, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("register returned empty tokens")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased alice@example.com", resp.User.Email)
	}
	if resp.User.Role != domain.RoleCustomer {
		t.Errorf("role = %q, want default customer", resp.User.Role)
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password stored in the clear")
	}

	login, err := svc.Login(ctx, &domain.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user id = %d, want %d", login.User.ID, resp.User.ID)
	}

	if _, err := svc.Login(ctx, &domain.LoginRequest{Email: "alice@example.com", Password: "wrong"}); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMockUserRepo()
	svc := service.NewAuthService(users, testConfig())
	ctx := context.Background()

	req := &domain.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct-horse"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := &domain.RegisterRequest{Username: "alice2", Email: "ALICE@example.com", Password: "other-password"}
	if _, err := svc.Register(ctx, dup); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("duplicate Register err = %v, want ErrEmailExists", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := service.NewAuthService(newMockUserRepo(), testConfig())
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"short password", domain.RegisterRequest{Username: "a", Email: "a@example.com", Password: "short"}},
		{"bad email", domain.RegisterRequest{Username: "a", Email: "not-an-email", Password: "long-enough"}},
		{"missing username", domain.RegisterRequest{Email: "a@example.com", Password: "long-enough"}},
		{"bogus role", domain.RegisterRequest{Username: "a", Email: "a@example.com", Password: "long-enough", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, &tt.req); err == nil {
				t.Error("invalid request accepted")
			}
		})
	}
}
