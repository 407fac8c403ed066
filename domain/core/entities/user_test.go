package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with empty friend set", func(t *testing.T) {
		user, err := NewUser("alice@x", "Alice", "Smith", "hash")
		require.NoError(t, err)

		assert.Equal(t, "alice@x", user.Email())
		assert.Equal(t, "Alice", user.FirstName())
		assert.Equal(t, "Smith", user.LastName())
		assert.Empty(t, user.Friends())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		_, err := NewUser("", "Alice", "Smith", "hash")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty first name", func(t *testing.T) {
		_, err := NewUser("alice@x", "", "Smith", "hash")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewUser("alice@x", "Alice", "Smith", "")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestUserAddFriend(t *testing.T) {
	newTestUser := func(t *testing.T, email string) *User {
		t.Helper()
		user, err := NewUser(email, "Test", "User", "hash")
		require.NoError(t, err)
		return user
	}

	t.Run("adds a friend", func(t *testing.T) {
		user := newTestUser(t, "alice@x")
		require.NoError(t, user.AddFriend("bob@x"))

		assert.True(t, user.HasFriend("bob@x"))
		assert.Equal(t, []string{"bob@x"}, user.Friends())
	})

	t.Run("adding an existing friend is a no-op", func(t *testing.T) {
		user := newTestUser(t, "alice@x")
		require.NoError(t, user.AddFriend("bob@x"))
		require.NoError(t, user.AddFriend("bob@x"))

		assert.Equal(t, []string{"bob@x"}, user.Friends())
	})

	t.Run("rejects self", func(t *testing.T) {
		user := newTestUser(t, "alice@x")
		err := user.AddFriend("alice@x")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty email", func(t *testing.T) {
		user := newTestUser(t, "alice@x")
		err := user.AddFriend("")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("friends are sorted", func(t *testing.T) {
		user := newTestUser(t, "alice@x")
		require.NoError(t, user.AddFriend("carol@x"))
		require.NoError(t, user.AddFriend("bob@x"))

		assert.Equal(t, []string{"bob@x", "carol@x"}, user.Friends())
	})
}
