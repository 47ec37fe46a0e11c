package util

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@b.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	claims, err := ValidateJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject 'user-1', got %q", claims.Subject)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("expected email 'a@b.com', got %q", claims.Email)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@b.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@b.com", "test-secret", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ValidateJWT(token, "test-secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}
