package auth

import (
	"testing"
	"time"

	"katador_backend/internal/models"
)

func TestGenerateAndParse_Success(t *testing.T) {
	Init("super-secret", time.Hour)

	tok, err := GenerateToken("acc-123", models.AccountRoleModelo, "a@b.com", "X")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.AccountID != "acc-123" {
		t.Fatalf("accountID mismatch: got %q want %q", claims.AccountID, "acc-123")
	}
	if claims.Role != models.AccountRoleModelo {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.Alias != "X" {
		t.Fatalf("alias mismatch: got %q", claims.Alias)
	}
}

func TestParseToken_Expired(t *testing.T) {
	Init("secret", -1*time.Second)

	tok, err := GenerateToken("acc-1", models.AccountRoleKatador, "k@b.com", "K")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok)
	if err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	Init("right-secret", time.Hour)
	tok, err := GenerateToken("acc-2", models.AccountRoleModelo, "m@b.com", "M")
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	Init("wrong-secret", time.Hour)
	_, err = ParseToken(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	Init("k", time.Hour)

	_, err := ParseToken("not.a.jwt")
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
