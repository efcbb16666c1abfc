package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("k", 32)

func TestNewJWTService_Validation(t *testing.T) {
	_, err := NewJWTService("short", time.Hour)
	assert.Error(t, err)

	_, err = NewJWTService(testSecret, 0)
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	token, expiry, err := svc.GenerateAccessToken(42, "trav@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "trav@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTService_Expired(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateAccessToken(1, "a@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	other, err := NewJWTService(strings.Repeat("x", 32), time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.GenerateAccessToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = svc.ExtractClaims(foreign)
	assert.Error(t, err)

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ExtractClaims(refresh)
	assert.Error(t, err)

	_, err = svc.ExtractClaims("not-a-token")
	assert.Error(t, err)
}
