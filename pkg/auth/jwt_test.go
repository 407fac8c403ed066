package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "howudoin-test",
		Expiry:    time.Hour,
	}
}

func TestJWTGenerateAndValidate(t *testing.T) {
	t.Run("round trip preserves claims", func(t *testing.T) {
		generator, err := NewJWTGenerator(testJWTConfig())
		require.NoError(t, err)
		validator, err := NewJWTValidator(testJWTConfig())
		require.NoError(t, err)

		token, err := generator.GenerateToken("alice@x", "Alice", "Smith")
		require.NoError(t, err)

		claims, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@x", claims.Email)
		assert.Equal(t, "Alice", claims.FirstName)
		assert.Equal(t, "Smith", claims.LastName)
		assert.Equal(t, "howudoin-test", claims.Issuer)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Expiry = -time.Minute
		generator, err := NewJWTGenerator(cfg)
		require.NoError(t, err)
		validator, err := NewJWTValidator(testJWTConfig())
		require.NoError(t, err)

		token, err := generator.GenerateToken("alice@x", "Alice", "Smith")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with a different key is rejected", func(t *testing.T) {
		generator, err := NewJWTGenerator(JWTConfig{SecretKey: "other-secret", Issuer: "howudoin-test"})
		require.NoError(t, err)
		validator, err := NewJWTValidator(testJWTConfig())
		require.NoError(t, err)

		token, err := generator.GenerateToken("alice@x", "Alice", "Smith")
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		validator, err := NewJWTValidator(testJWTConfig())
		require.NoError(t, err)

		_, err = validator.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty secret is a configuration error", func(t *testing.T) {
		_, err := NewJWTGenerator(JWTConfig{})
		assert.Error(t, err)

		_, err = NewJWTValidator(JWTConfig{})
		assert.Error(t, err)
	})
}
