package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(&config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: 15 * time.Minute,
	})
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID, "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email %s", claims.Email)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(&config.JWTConfig{Secret: "secret-a", AccessTokenExpiry: time.Minute})
	verifier := NewTokenService(&config.JWTConfig{Secret: "secret-b", AccessTokenExpiry: time.Minute})

	token, err := issuer.GenerateAccessToken(context.Background(), uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService(&config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: -time.Minute, // already expired
	})

	token, err := svc.GenerateAccessToken(context.Background(), uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(context.Background(), token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService(&config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Minute})

	if _, err := svc.ValidateAccessToken(context.Background(), "not-a-token"); err == nil {
		t.Error("expected validation to fail for malformed input")
	}
}
