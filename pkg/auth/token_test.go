package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectTokenReadsNumericSubject(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	token := signed(t, jwt.MapClaims{"sub": 2, "user": "mor_2314", "iat": issued.Unix()})

	info, err := InspectToken(token)
	require.NoError(t, err)
	require.NotNil(t, info.UserID)
	assert.Equal(t, 2, *info.UserID)
	assert.Equal(t, "mor_2314", info.Username)
	require.NotNil(t, info.IssuedAt)
	assert.True(t, issued.Equal(*info.IssuedAt))
}

func TestInspectTokenReadsStringSubject(t *testing.T) {
	info, err := InspectToken(signed(t, jwt.MapClaims{"sub": "17"}))
	require.NoError(t, err)
	require.NotNil(t, info.UserID)
	assert.Equal(t, 17, *info.UserID)
	assert.Empty(t, info.Username)
}

func TestInspectTokenIgnoresNonNumericSubject(t *testing.T) {
	info, err := InspectToken(signed(t, jwt.MapClaims{"sub": "alice"}))
	require.NoError(t, err)
	assert.Nil(t, info.UserID)
}

func TestInspectTokenRejectsGarbage(t *testing.T) {
	_, err := InspectToken("")
	assert.Error(t, err)

	_, err = InspectToken("not-a-jwt")
	assert.Error(t, err)
}
