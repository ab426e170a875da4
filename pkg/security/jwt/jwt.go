package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = time.Hour

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides time.Now for issuing and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Generator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewGenerator(secret, issuer string, opts ...Option) *Generator {
	o := buildOptions(opts)
	return &Generator{secret: []byte(secret), issuer: issuer, now: o.now}
}

// Claims carries the registered claims plus the caller's role.
type Claims struct {
	jwt.RegisteredClaims
	Role auth.Role `json:"role"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, time.Time, error) {
	now := g.now().UTC()
	expiresAt := now.Add(TokenTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier validates HS256 tokens signed with secret. An empty issuer
// disables the issuer check.
func NewVerifier(secret, issuer string, opts ...Option) *Verifier {
	o := buildOptions(opts)
	return &Verifier{secret: []byte(secret), issuer: issuer, now: o.now}
}

func (v *Verifier) Verify(tokenStr string) (auth.Identity, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Identity{}, auth.ErrTokenExpired
		}
		return auth.Identity{}, auth.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return auth.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
