package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// TestGenerateAndValidateToken round-trips a token through the validator.
func TestGenerateAndValidateToken(t *testing.T) {
	tokenString, err := GenerateToken("507f1f77bcf86cd799439011", "admin", testSecret)
	require.NoError(t, err, "GenerateToken should succeed")
	require.NotEmpty(t, tokenString)

	claims, err := ValidateToken(tokenString, testSecret)
	require.NoError(t, err, "ValidateToken should accept a fresh token")

	id, err := AdminID(claims)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id, "id claim should survive the round trip")
	assert.Equal(t, "admin", claims["username"])
}

// TestValidateTokenWrongSecret verifies signature checking.
func TestValidateTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("507f1f77bcf86cd799439011", "admin", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "another-secret")
	assert.Error(t, err, "a token signed with a different secret must be rejected")
}

// TestValidateTokenExpired verifies expiry checking.
func TestValidateTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"id":       "507f1f77bcf86cd799439011",
		"username": "admin",
		"exp":      time.Now().Add(-time.Minute).Unix(),
		"iat":      time.Now().Add(-25 * time.Hour).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.Error(t, err, "an expired token must be rejected")
}

// TestValidateTokenGarbage rejects non-JWT input.
func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

// TestAdminIDMissingClaim verifies the id claim is mandatory.
func TestAdminIDMissingClaim(t *testing.T) {
	_, err := AdminID(jwt.MapClaims{"username": "admin"})
	assert.Error(t, err, "claims without an id must be rejected")
}
