package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	in := model.Principal{UserID: 42, Roles: []model.Role{model.RoleUser, model.RoleCourtOwner}}
	tok, err := NewAccessToken(secret, in, 5)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), tok.Exp, 5*time.Second)

	out, err := ParseAccessToken(secret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseAccessToken_SingleRoleClaim(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "7",
		"role": "admin",
		"exp":  time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	p, err := ParseAccessToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.UserID)
	assert.True(t, p.IsAdmin())
}

func TestParseAccessToken_Rejects(t *testing.T) {
	sign := func(claims jwt.MapClaims, key string) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return raw
	}
	future := time.Now().Add(time.Minute).Unix()
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", sign(jwt.MapClaims{"sub": "1", "exp": future}, "other")},
		{"expired", sign(jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Minute).Unix()}, secret)},
		{"no expiry", sign(jwt.MapClaims{"sub": "1"}, secret)},
		{"zero subject", sign(jwt.MapClaims{"sub": "0", "exp": future}, secret)},
		{"text subject", sign(jwt.MapClaims{"sub": "alice", "exp": future}, secret)},
		{"none alg", func() string {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "exp": future}).
				SignedString(jwt.UnsafeAllowNoneSignatureType)
			require.NoError(t, err)
			return raw
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewAccessToken_EmptySecret(t *testing.T) {
	_, err := NewAccessToken("", model.Principal{UserID: 1}, 5)
	assert.Error(t, err)
}
