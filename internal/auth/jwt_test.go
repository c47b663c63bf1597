package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(42, "root", "super-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, "super-secret")
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "root" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a non-empty token ID")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(1, "u1", "secret", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, "secret"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, "u2", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.jwt", "k"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestParseToken_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	t1, err := GenerateToken(3, "u3", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	t2, err := GenerateToken(3, "u3", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	c1, _ := ParseToken(t1, "secret")
	c2, _ := ParseToken(t2, "secret")
	if c1 == nil || c2 == nil || c1.ID == c2.ID {
		t.Fatalf("expected distinct token IDs, got %v and %v", c1, c2)
	}
}
