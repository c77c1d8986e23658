package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/ThulyaRodrigo/ToDoApp/domain/user"
	"github.com/google/uuid"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3
)

// Error messages double as the contract with the API module: errors cross the
// service-container boundary as plain messages and are matched there.
var (
	// ErrMissingFields is returned when a required signup/login field is absent.
	ErrMissingFields = errors.New("all fields are required")
	// ErrPasswordTooShort is returned when the password fails the length check.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	// ErrUsernameTooShort is returned when the username fails the length check.
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	// ErrEmailTaken is returned when the normalized email is already registered.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for both unknown users and wrong
	// passwords, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles signup, login and token verification.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup validates the input, persists a new user with a hashed password and
// returns the user together with a signed token for immediate login.
// Conflicts report which field collided; the email comparison is
// case-insensitive because emails are stored normalized.
func (s *AuthService) Signup(_ context.Context, email, username, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	username = domain.NormalizeUsername(username)

	if email == "" || username == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}
	if len(username) < MinUsernameLength {
		return nil, "", ErrUsernameTooShort
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.repo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates by email or username and returns a signed token.
// Unknown users and wrong passwords produce the identical error.
func (s *AuthService) Login(_ context.Context, emailOrUsername, password string) (*domain.User, string, error) {
	if emailOrUsername == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.repo.FindByEmailOrUsername(
		domain.NormalizeEmail(emailOrUsername),
		domain.NormalizeUsername(emailOrUsername),
	)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// ValidateToken verifies a bearer token and returns the embedded identity.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// GetUser retrieves a user by ID. Returns ErrUserNotFound if the account was
// deleted after the token was issued.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}
