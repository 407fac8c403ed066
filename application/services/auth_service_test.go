package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlenesK/howudoin/pkg/auth"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestRegister(t *testing.T) {
	t.Run("creates user and returns token", func(t *testing.T) {
		env := newTestEnv(t)

		user, token, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		assert.Equal(t, "alice@x", user.Email())
		assert.NotEmpty(t, token)

		// Stored credential is a hash, never the plain password
		stored, err := env.users.FindByEmail(env.ctx, "alice@x")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", stored.PasswordHash())

		match, err := auth.ComparePassword("secret123", stored.PasswordHash())
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("token carries the user's identity", func(t *testing.T) {
		env := newTestEnv(t)

		_, token, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		validator, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: "test-secret",
			Issuer:    "howudoin-test",
			Expiry:    time.Hour,
		})
		require.NoError(t, err)

		claims, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@x", claims.Email)
		assert.Equal(t, "Alice", claims.FirstName)
	})

	t.Run("duplicate email fails with conflict", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		_, _, err = env.auth.Register(env.ctx, "alice@x", "other456", "Alice", "Smith")
		assert.True(t, pkgerrors.IsConflict(err))
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return token", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		user, token, err := env.auth.Login(env.ctx, "alice@x", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "alice@x", user.Email())
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password fails with unauthorized", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		_, _, err = env.auth.Login(env.ctx, "alice@x", "wrong")
		assert.True(t, pkgerrors.IsUnauthorized(err))
	})

	// The same error for unknown email and wrong password, so responses do not
	// reveal whether an email is registered
	t.Run("unknown email fails with the same unauthorized error", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.auth.Register(env.ctx, "alice@x", "secret123", "Alice", "Smith")
		require.NoError(t, err)

		_, _, unknownErr := env.auth.Login(env.ctx, "ghost@x", "secret123")
		_, _, wrongErr := env.auth.Login(env.ctx, "alice@x", "wrong")

		assert.True(t, pkgerrors.IsUnauthorized(unknownErr))
		assert.True(t, pkgerrors.IsUnauthorized(wrongErr))
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}
