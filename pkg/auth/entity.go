package auth

import (
	"strings"
	"time"
)

// User is a domain entity representing a registered account. ID equals the
// normalized email.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the public projection of a User bound to a session.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

// Session is an issued session token together with the identity it carries.
type Session struct {
	Token     string
	Identity  Identity
	ExpiresAt time.Time
}

// NormalizeEmail lower-cases and trims an email address. The result is the
// canonical user key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
