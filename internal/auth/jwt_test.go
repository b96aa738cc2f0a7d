package auth_test

import (
	"testing"
	"time"

	"github.com/openseva/grievance/internal/auth"
	"github.com/openseva/grievance/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "66f1a2b3c4d5e6f7a8b9c0d1",
		Name:  "Asha Verma",
		Email: "asha@example.org",
		Role:  domain.RoleCitizen,
	}
}

func TestJWTManager_GenerateToken(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret-key-32-chars-minimum", 24*time.Hour)

	token, err := mgr.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	// Token should have 3 parts (header.payload.signature)
	parts := 0
	for _, c := range token {
		if c == '.' {
			parts++
		}
	}
	if parts != 2 {
		t.Errorf("GenerateToken() token has %d dots, want 2", parts)
	}
}

func TestJWTManager_ValidateToken_Success(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret-key-32-chars-minimum", 24*time.Hour)
	user := testUser()

	token, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.Sub != user.ID {
		t.Errorf("ValidateToken() sub = %s, want %s", claims.Sub, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("ValidateToken() email = %s, want %s", claims.Email, user.Email)
	}
	if claims.Role != domain.RoleCitizen {
		t.Errorf("ValidateToken() role = %s, want %s", claims.Role, domain.RoleCitizen)
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	// Negative expiration produces an already-expired token
	mgr := auth.NewJWTManager("test-secret-key-32-chars-minimum", -time.Hour)

	token, err := mgr.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err = mgr.ValidateToken(token); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	mgr1 := auth.NewJWTManager("secret-key-one-32-chars-minimum1", 24*time.Hour)
	mgr2 := auth.NewJWTManager("secret-key-two-32-chars-minimum2", 24*time.Hour)

	token, err := mgr1.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err = mgr2.ValidateToken(token); err == nil {
		t.Error("ValidateToken() expected error for invalid signature")
	}
}

func TestJWTManager_ValidateToken_MalformedToken(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret-key-32-chars-minimum", 24*time.Hour)

	invalidTokens := []string{
		"",
		"not-a-token",
		"only.two.parts.here",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		if _, err := mgr.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) expected error for malformed token", token)
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !auth.CheckPassword(hash, "correct horse battery") {
		t.Error("CheckPassword() = false for matching password")
	}
	if auth.CheckPassword(hash, "wrong password entirely") {
		t.Error("CheckPassword() = true for non-matching password")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := auth.HashPassword("short"); err == nil {
		t.Error("HashPassword() expected error for short password")
	}
}
