package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestSendFriendRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		request, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)

		assert.Equal(t, "alice@x", request.SenderEmail())
		assert.Equal(t, "bob@x", request.ReceiverEmail())
		assert.Equal(t, entities.RequestPending, request.Status())

		pending, err := env.friends.GetPendingRequests(env.ctx, "bob@x")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, request.ID(), pending[0].ID())
	})

	t.Run("second request for the same pair fails with conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)

		_, err = env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		assert.True(t, pkgerrors.IsConflict(err))

		pending, err := env.friends.GetPendingRequests(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})

	// The duplicate check is keyed by the ordered pair, so a pending request
	// in the opposite direction does not block a new one.
	t.Run("opposite direction request is allowed while one is pending", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)

		_, err = env.friends.SendFriendRequest(env.ctx, "bob@x", "alice@x")
		require.NoError(t, err)

		alicePending, err := env.friends.GetPendingRequests(env.ctx, "alice@x")
		require.NoError(t, err)
		assert.Len(t, alicePending, 1)

		bobPending, err := env.friends.GetPendingRequests(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Len(t, bobPending, 1)
	})

	t.Run("self request fails with validation", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "alice@x")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("unknown target fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "ghost@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("request to an existing friend fails with validation", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	t.Run("acceptance makes the friendship symmetric", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)

		require.NoError(t, env.friends.AcceptFriendRequest(env.ctx, "bob@x", "alice@x"))

		alice, err := env.users.FindByEmail(env.ctx, "alice@x")
		require.NoError(t, err)
		bob, err := env.users.FindByEmail(env.ctx, "bob@x")
		require.NoError(t, err)

		assert.True(t, alice.HasFriend("bob@x"))
		assert.True(t, bob.HasFriend("alice@x"))

		pending, err := env.friends.GetPendingRequests(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("accepting a nonexistent request fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		err := env.friends.AcceptFriendRequest(env.ctx, "bob@x", "alice@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("direction matters when accepting", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		_, err := env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)

		// Alice cannot accept the request she sent
		err = env.friends.AcceptFriendRequest(env.ctx, "alice@x", "bob@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("re-accepting fails with validation", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		err := env.friends.AcceptFriendRequest(env.ctx, "bob@x", "alice@x")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestGetFriendList(t *testing.T) {
	t.Run("returns friend profiles", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.registerUser(t, "carol@x")
		env.befriend(t, "alice@x", "bob@x")
		env.befriend(t, "alice@x", "carol@x")

		friends, err := env.friends.GetFriendList(env.ctx, "alice@x")
		require.NoError(t, err)
		require.Len(t, friends, 2)
		assert.Equal(t, "bob@x", friends[0].Email())
		assert.Equal(t, "carol@x", friends[1].Email())
	})

	t.Run("empty for a user with no friends", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")

		friends, err := env.friends.GetFriendList(env.ctx, "alice@x")
		require.NoError(t, err)
		assert.Empty(t, friends)
	})

	t.Run("unknown user fails with not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.friends.GetFriendList(env.ctx, "ghost@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
