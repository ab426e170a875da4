package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTokenExpired is returned by a TokenVerifier for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken covers bad signatures, malformed tokens and foreign issuers.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (token string, expiresAt time.Time, err error)
}

// TokenVerifier turns a presented token back into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
