package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate("member-1", "maria@example.com", "member", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := Validate(token, "secret")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims["sub"] != "member-1" {
		t.Errorf("sub = %v, want member-1", claims["sub"])
	}
	if claims["email"] != "maria@example.com" {
		t.Errorf("email = %v, want maria@example.com", claims["email"])
	}
	if claims["role"] != "member" {
		t.Errorf("role = %v, want member", claims["role"])
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := Generate("member-1", "maria@example.com", "member", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := Validate(token, "other-secret"); err == nil {
		t.Error("Validate accepted a token signed with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := Generate("member-1", "maria@example.com", "member", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := Validate(token, "secret"); err == nil {
		t.Error("Validate accepted an expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := Validate("not.a.token", "secret"); err == nil {
		t.Error("Validate accepted a malformed token")
	}
}
