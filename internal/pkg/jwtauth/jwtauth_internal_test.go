package jwtauth

import (
	"testing"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, now time.Time) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, time.Hour)
	require.NoError(t, err)
	m.now = func() time.Time { return now }
	return m
}

func TestManager_IssueThenParse(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)
	principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleDistributor}

	token, expiresAt, err := m.Issue(principal)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, parsed)
}

func TestManager_Parse_Rejects(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)
	principal := user.Principal{ID: kernel.NewUUID(), Role: user.RoleDriver}

	valid, _, err := m.Issue(principal)
	require.NoError(t, err)

	sign := func(claims Claims, secret string, method jwt.SigningMethod) string {
		s, signErr := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, signErr)
		return s
	}
	baseClaims := func() Claims {
		return Claims{
			Role: "DRIVER",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   principal.ID.String(),
				Issuer:    DefaultIssuer,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	expired := baseClaims()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	badRole := baseClaims()
	badRole.Role = "ADMIN"

	badSubject := baseClaims()
	badSubject.Subject = "not-a-uuid"

	noExpiry := baseClaims()
	noExpiry.ExpiresAt = nil

	otherIssuer := baseClaims()
	otherIssuer.Issuer = "someone-else"

	testCases := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"tampered":       valid + "tampered",
		"wrong secret":   sign(baseClaims(), "ffffffffffffffffffffffffffffffff", jwt.SigningMethodHS256),
		"wrong method":   sign(baseClaims(), testSecret, jwt.SigningMethodHS512),
		"expired":        sign(expired, testSecret, jwt.SigningMethodHS256),
		"unknown role":   sign(badRole, testSecret, jwt.SigningMethodHS256),
		"bad subject":    sign(badSubject, testSecret, jwt.SigningMethodHS256),
		"no expiry":      sign(noExpiry, testSecret, jwt.SigningMethodHS256),
		"foreign issuer": sign(otherIssuer, testSecret, jwt.SigningMethodHS256),
	}

	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)

			require.ErrorIs(t, err, errs.ErrUnauthenticated)
		})
	}
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager("short", time.Hour)
	require.ErrorIs(t, err, ErrSecretTooShort)

	_, err = NewManager(testSecret, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestManager_Issue_InvalidPrincipal(t *testing.T) {
	m := newTestManager(t, time.Now())

	_, _, err := m.Issue(user.Principal{})

	require.Error(t, err)
}
