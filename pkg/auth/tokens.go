package auth

import (
	"context"
	"time"
)

// TokenIssuer abstracts session token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(ctx context.Context, sessionID string, identity Identity) (token string, expiresAt time.Time, err error)
	// Parse validates a token and returns the session id it names.
	Parse(token string) (sessionID string, err error)
}
