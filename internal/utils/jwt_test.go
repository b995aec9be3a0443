// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT(42, "Jane Doe", "jane@example.com", "Pharmacy", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Pharmacy", claims.Role)
	assert.Equal(t, "pharmacy-online", claims.Issuer)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(42, "Jane Doe", "jane@example.com", "Customer", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}

func TestJWTMissingSubject(t *testing.T) {
	token, err := GenerateJWT(0, "Nobody", "nobody@example.com", "Customer", 1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.EqualError(t, err, "missing subject claim")
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, 24)
	require.NoError(t, err)

	userID, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = ValidateRefreshToken("garbage")
	assert.Error(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	token, err := GenerateRefreshToken(42, -1)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token)
	assert.Error(t, err)
}
