package auth

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	config := TokenConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 7 * 24 * time.Hour,
		Issuer:        "test-issuer",
	}
	manager := NewTokenManager(config)

	userID := "user-123"
	username := "alice"

	token, err := manager.Generate(userID, username)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if token == "" {
		t.Error("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Username != username {
		t.Errorf("claims.Username = %v, want %v", claims.Username, username)
	}
	if claims.Issuer != config.Issuer {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, config.Issuer)
	}
}

func TestTokenManager_SevenDayExpiry(t *testing.T) {
	config := DefaultTokenConfig()
	manager := NewTokenManager(config)

	token, err := manager.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 7*24*time.Hour {
		t.Errorf("token lifetime = %v, want %v", lifetime, 7*24*time.Hour)
	}
}

func TestTokenManager_InvalidToken(t *testing.T) {
	config := DefaultTokenConfig()
	manager := NewTokenManager(config)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Validate(tt.token)
			if err == nil {
				t.Error("Validate() should return error for invalid token")
			}
		})
	}
}

func TestTokenManager_WrongSecretKey(t *testing.T) {
	manager1 := NewTokenManager(TokenConfig{
		SecretKey:     "secret-key-1",
		TokenDuration: 7 * 24 * time.Hour,
		Issuer:        "test-issuer",
	})
	manager2 := NewTokenManager(TokenConfig{
		SecretKey:     "secret-key-2",
		TokenDuration: 7 * 24 * time.Hour,
		Issuer:        "test-issuer",
	})

	token, err := manager1.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = manager2.Validate(token)
	if err == nil {
		t.Error("Validate() should fail with different secret key")
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	config := TokenConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Millisecond, // Very short duration
		Issuer:        "test-issuer",
	}
	manager := NewTokenManager(config)

	token, err := manager.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	if err == nil {
		t.Error("Validate() should fail for expired token")
	}
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}
