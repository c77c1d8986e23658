package user

import (
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null;type:text" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// PublicUser is the client-facing view of a user. The password hash is never
// part of any response.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// NormalizeEmail lowercases and trims an email address. Uniqueness is
// enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername trims a username.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// Claims represents the identity embedded in a bearer token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
