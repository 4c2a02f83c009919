package lib

import (
	"net/http/httptest"
	"testing"
	"time"

	"creativehands_server/structs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *structs.AuthConfig {
	return &structs.AuthConfig{
		JwtSecret:   "test-secret",
		Issuer:      "creativehands-test",
		Audience:    "creativehands-clients",
		TokenExpiry: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testAuthConfig()

	token, err := GenerateToken("ana", "admin", cfg)
	require.NoError(t, err)

	claims, err := ParseToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEqual(t, uuid.Nil, claims.Jti)
	assert.True(t, claims.Exp.After(claims.Iat))
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testAuthConfig()

	token, err := GenerateToken("ana", "admin", cfg)
	require.NoError(t, err)

	other := testAuthConfig()
	other.JwtSecret = "different-secret"
	_, err = ParseToken(token, other)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testAuthConfig()

	token, err := GenerateToken("ana", "admin", cfg)
	require.NoError(t, err)

	other := testAuthConfig()
	other.Issuer = "someone-else"
	_, err = ParseToken(token, other)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpiry = -time.Minute

	token, err := GenerateToken("ana", "admin", cfg)
	require.NoError(t, err)

	_, err = ParseToken(token, cfg)
	assert.Error(t, err)
}

func TestExtractClaims(t *testing.T) {
	cfg := testAuthConfig()

	token, err := GenerateToken("ana", "user", cfg)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/orders/cart", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	claims, err := ExtractClaims(r, cfg)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Name)

	r = httptest.NewRequest("GET", "/orders/cart", nil)
	_, err = ExtractClaims(r, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)

	r = httptest.NewRequest("GET", "/orders/cart", nil)
	r.Header.Set("Authorization", token) // missing Bearer prefix
	_, err = ExtractClaims(r, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
