package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound        = errors.New("not found")
	ErrEmailInUse      = errors.New("email already in use")
	ErrRoleRequired    = errors.New("role is required")
	ErrInvalidRole     = errors.New("invalid role")
	ErrValidation      = errors.New("username, email and password are required")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations must treat email as unique (case-insensitive) and return
// ErrEmailInUse on a duplicate, and ErrNotFound when a lookup misses.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}
