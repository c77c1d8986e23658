package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenConfig holds bearer token configuration.
type TokenConfig struct {
	SecretKey     string
	TokenDuration time.Duration
	Issuer        string
}

// DefaultTokenConfig returns the default token configuration. Tokens expire
// 7 days after issuance; there is no refresh flow, clients sign in again.
// In production, the secret key should be loaded from environment variables.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey:     "change-this-secret-in-production",
		TokenDuration: 7 * 24 * time.Hour,
		Issuer:        "todoapp",
	}
}

// TokenClaims are the custom claims carried by a bearer token.
type TokenClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new TokenManager with the given configuration.
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{
		config: config,
	}
}

// Generate issues a signed token embedding the user's identifier and username.
func (m *TokenManager) Generate(userID, username string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Validate verifies the token signature and expiry and returns the claims.
func (m *TokenManager) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
