package token

import (
	"errors"
	"testing"
	"time"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

func TestIssueVerify_Roundtrip(t *testing.T) {
	signed, err := Issue("secret", "user_1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Verify("secret", signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := Issue("secret", "user_1", "user", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify("other-secret", signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	signed, err := Issue("secret", "user_1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify("secret", signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	if _, err := Verify("secret", "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
