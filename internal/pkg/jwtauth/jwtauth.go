// Package jwtauth issues and verifies the HS256 bearer tokens that carry a
// user.Principal between requests.
package jwtauth

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer  = "cargo"
	MinSecretBytes = 32
)

var ErrSecretTooShort = errors.New("jwt secret must be at least 32 bytes")

// Claims carries the principal. The user id travels in the standard sub claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with one shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("token ttl", ttl, "1ns", "unbounded")
	}

	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: DefaultIssuer,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token and the moment it stops being accepted.
func (m *Manager) Issue(principal user.Principal) (string, time.Time, error) {
	if err := principal.Validate(); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Parse verifies the token and returns its principal. Every failure is an
// errs.UnauthenticatedError.
func (m *Manager) Parse(tokenString string) (user.Principal, error) {
	if tokenString == "" {
		return user.Principal{}, errs.NewUnauthenticatedError("missing bearer token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return user.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid token", err)
	}
	if !token.Valid {
		return user.Principal{}, errs.NewUnauthenticatedError("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid subject", err)
	}

	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid role", err)
	}

	return user.Principal{ID: id, Role: role}, nil
}
