package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/shop-api/internal/core/domain"
)

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", 0)
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", 0)
	require.NoError(t, err)

	tests := []domain.Identity{
		{SubjectID: "64b7f0c2a1b2c3d4e5f60718", IsAdmin: false},
		{SubjectID: "64b7f0c2a1b2c3d4e5f60719", IsAdmin: true},
	}
	for _, want := range tests {
		token, err := svc.Issue(want)
		require.NoError(t, err)

		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		again, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, got, again, "verification must be idempotent")
	}
}

func TestTokenService_NoTTLOmitsExpiry(t *testing.T) {
	svc, err := NewTokenService("secret", 0)
	require.NoError(t, err)

	token, err := svc.Issue(domain.Identity{SubjectID: "u1"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	_, hasExp := claims["exp"]
	assert.False(t, hasExp)
}

func TestTokenService_Verify_Rejects(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenService("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(domain.Identity{SubjectID: "u1"})
	require.NoError(t, err)

	expiring, err := NewTokenService("secret", time.Minute)
	require.NoError(t, err)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiring.Issue(domain.Identity{SubjectID: "u1"})
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"is_admin": true}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":        "not-a-token",
		"empty":          "",
		"foreign secret": foreign,
		"expired":        expired,
		"missing sub":    noSubject,
		"wrong alg":      wrongAlg,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}
