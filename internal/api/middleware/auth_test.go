package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})
	return privateKey, string(pubPEM)
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticateJWT(t *testing.T) {
	privateKey, publicPEM := generateTestKeyPair(t)
	cfg := AuthConfig{JWTPublicKey: publicPEM}

	t.Run("accepts a valid bearer token and extracts the subject", func(t *testing.T) {
		tokenString := signTestToken(t, privateKey, jwt.RegisteredClaims{
			Subject:   "admin@townhall",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := Authenticate("Bearer "+tokenString, cfg)
		assert.True(t, result.Success)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, "admin@townhall", result.AuthSubject)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		tokenString := signTestToken(t, privateKey, jwt.RegisteredClaims{
			Subject:   "admin@townhall",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		result := Authenticate("Bearer "+tokenString, cfg)
		assert.False(t, result.Success)
		require.Error(t, result.Error)
	})

	t.Run("rejects a token signed by another key", func(t *testing.T) {
		otherKey, _ := generateTestKeyPair(t)
		tokenString := signTestToken(t, otherKey, jwt.RegisteredClaims{
			Subject:   "admin@townhall",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := Authenticate("Bearer "+tokenString, cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects a bearer token when no public key is configured", func(t *testing.T) {
		tokenString := signTestToken(t, privateKey, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := Authenticate("Bearer "+tokenString, AuthConfig{})
		assert.False(t, result.Success)
	})
}

func TestAuthenticateAPIKey(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"key-one", "key-two"}}

	t.Run("accepts a configured key", func(t *testing.T) {
		result := Authenticate("ApiKey key-one", cfg)
		assert.True(t, result.Success)
		assert.Equal(t, "apikey", result.AuthType)
		assert.Empty(t, result.AuthSubject)
	})

	t.Run("rejects an unknown key", func(t *testing.T) {
		result := Authenticate("ApiKey key-three", cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects any key when none are configured", func(t *testing.T) {
		result := Authenticate("ApiKey key-one", AuthConfig{})
		assert.False(t, result.Success)
	})
}

func TestAuthenticateHeaderParsing(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"key-one"}}

	t.Run("rejects a missing header", func(t *testing.T) {
		result := Authenticate("", cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		result := Authenticate("key-one", cfg)
		assert.False(t, result.Success)
	})

	t.Run("rejects an unsupported scheme", func(t *testing.T) {
		result := Authenticate("Basic dXNlcjpwYXNz", cfg)
		assert.False(t, result.Success)
	})
}
