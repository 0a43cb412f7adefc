package services

import (
	"context"
	"testing"

	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/models"
	"github.com/paluwagan/paluwagan-backend/internal/repositories/memory"
	"github.com/paluwagan/paluwagan-backend/pkg/apperrors"
	"github.com/paluwagan/paluwagan-backend/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	memberRepo := memory.NewMemberRepository()
	service := NewAuthService(memberRepo, testConfig())

	member, err := service.Register(context.Background(), &models.RegisterRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Password:  "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if member.ID.IsZero() {
		t.Error("registered member has no id")
	}
	if member.Password != "" {
		t.Error("Register returned the password hash")
	}
	if member.Role != "member" {
		t.Errorf("Role = %q, want %q", member.Role, "member")
	}

	// The stored password must be a hash, never the plaintext.
	stored, err := memberRepo.FindByEmail(context.Background(), "maria@example.com")
	if err != nil {
		t.Fatalf("member was not persisted: %v", err)
	}
	if stored.Password == "" || stored.Password == "correct-horse" {
		t.Error("stored password is not hashed")
	}

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "maria@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Login returned an empty token")
	}
	if resp.Member.Password != "" {
		t.Error("Login returned the password hash")
	}

	claims, err := jwt.Validate(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != member.ID.Hex() {
		t.Errorf("token sub = %q, want %q", sub, member.ID.Hex())
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := NewAuthService(memory.NewMemberRepository(), testConfig())
	req := &models.RegisterRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Password:  "correct-horse",
	}

	if _, err := service.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := service.Register(context.Background(), req)
	if !apperrors.IsConflict(err) {
		t.Errorf("got %v, want conflict error", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewAuthService(memory.NewMemberRepository(), testConfig())

	if _, err := service.Register(context.Background(), &models.RegisterRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Password:  "correct-horse",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("wrong password: got %v, want validation error", err)
	}

	_, err = service.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	if !apperrors.IsValidation(err) {
		t.Errorf("unknown email: got %v, want validation error", err)
	}
}
