package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/repository/memory"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
)

const secret = "test-secret"

func newService(t *testing.T) (auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return auth.NewAuthService(store, jwt.NewGenerator(secret, "tests"), bcrypt.MinCost), store
}

func register(t *testing.T, uc auth.AuthUseCase, username, email string, role auth.Role) auth.User {
	t.Helper()
	u, err := uc.Register(context.Background(), auth.RegisterInput{
		Username: username, Email: email, Password: "pw-" + username, Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterThenLogin(t *testing.T) {
	uc, _ := newService(t)
	u := register(t, uc, "alice", "Alice@Example.com", auth.RoleAdmin)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.ID)

	res, err := uc.Login(context.Background(), "alice@example.com", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.WithinDuration(t, time.Now().Add(jwt.TokenTTL), res.ExpiresAt, 5*time.Second)

	id, err := jwt.NewVerifier(secret, "tests").Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, auth.RoleAdmin, id.Role)
}

func TestRegisterStoresHash(t *testing.T) {
	uc, store := newService(t)
	register(t, uc, "alice", "alice@example.com", auth.RoleUser)

	stored, err := store.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw-alice", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw-alice")))
}

func TestRegisterRejects(t *testing.T) {
	tests := []struct {
		name string
		in   auth.RegisterInput
		want error
	}{
		{"missing role", auth.RegisterInput{Username: "a", Email: "a@x.io", Password: "p"}, auth.ErrRoleRequired},
		{"unknown role", auth.RegisterInput{Username: "a", Email: "a@x.io", Password: "p", Role: "root"}, auth.ErrInvalidRole},
		{"blank username", auth.RegisterInput{Username: "  ", Email: "a@x.io", Password: "p", Role: auth.RoleUser}, auth.ErrValidation},
		{"no email", auth.RegisterInput{Username: "a", Password: "p", Role: auth.RoleUser}, auth.ErrValidation},
		{"no password", auth.RegisterInput{Username: "a", Email: "a@x.io", Role: auth.RoleUser}, auth.ErrValidation},
		{"password too long", auth.RegisterInput{Username: "a", Email: "a@x.io", Password: strings.Repeat("a", 73), Role: auth.RoleUser}, auth.ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store := newService(t)
			_, err := uc.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, store.Len())
		})
	}
}

func TestRegisterAcceptsMaxLengthPassword(t *testing.T) {
	uc, _ := newService(t)
	pw := strings.Repeat("a", 72)
	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Username: "a", Email: "a@x.io", Password: pw, Role: auth.RoleUser,
	})
	require.NoError(t, err)
	_, err = uc.Login(context.Background(), "a@x.io", pw)
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, store := newService(t)
	register(t, uc, "alice", "alice@example.com", auth.RoleUser)

	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Username: "other", Email: " ALICE@example.com ", Password: "x", Role: auth.RoleAdmin,
	})
	require.ErrorIs(t, err, auth.ErrEmailInUse)
	assert.Equal(t, 1, store.Len())
}

func TestLoginFailures(t *testing.T) {
	store := memory.NewStore()
	gen := &countingGenerator{}
	uc := auth.NewAuthService(store, gen, bcrypt.MinCost)
	register(t, uc, "alice", "alice@example.com", auth.RoleUser)

	_, err := uc.Login(context.Background(), "bob@example.com", "pw-alice")
	require.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = uc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, auth.ErrInvalidPassword)
	assert.Zero(t, gen.calls)

	_, err = uc.Login(context.Background(), "alice@example.com", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	uc := auth.NewAuthService(failingRepo{err: boom}, &countingGenerator{}, bcrypt.MinCost)

	_, err := uc.Register(context.Background(), auth.RegisterInput{
		Username: "a", Email: "a@x.io", Password: "p", Role: auth.RoleUser,
	})
	require.ErrorIs(t, err, boom)

	_, err = uc.Login(context.Background(), "a@x.io", "p")
	require.ErrorIs(t, err, boom)
}

type countingGenerator struct{ calls int }

func (g *countingGenerator) Generate(_ context.Context, u auth.User) (string, time.Time, error) {
	g.calls++
	return strings.Repeat("t", 8) + u.ID, time.Now().Add(time.Hour), nil
}

type failingRepo struct{ err error }

func (r failingRepo) Create(context.Context, auth.User) error { return r.err }

func (r failingRepo) GetByEmail(context.Context, string) (auth.User, error) {
	return auth.User{}, r.err
}
