package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     Role
}

type AuthResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

const maxPasswordBytes = 72

type authService struct {
	repo       UserRepository
	tokens     TokenGenerator
	bcryptCost int
}

// NewAuthService returns default implementation of AuthUseCase.
// A non-positive cost falls back to bcrypt.DefaultCost.
func NewAuthService(repo UserRepository, tokens TokenGenerator, bcryptCost int) AuthUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (User, error) {
	if in.Role == "" {
		return User{}, ErrRoleRequired
	}
	if !in.Role.Valid() {
		return User{}, ErrInvalidRole
	}
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return User{}, ErrValidation
	}
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	if len(in.Password) > maxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}

	// Best-effort check; the store's unique index settles races.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailInUse
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrUserNotFound
		}
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidPassword
	}
	token, expiresAt, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
