package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42, "aisyah@example.my", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "aisyah@example.my", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "pasar-api", claims.Issuer)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(1, "a@b.my", "admin")
	require.NoError(t, err)

	InitJWT("secret-two")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	InitJWT("")
	_, err := GenerateJWT(1, "a@b.my", "customer")
	assert.Error(t, err)
}
