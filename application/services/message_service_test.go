package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestSendMessage(t *testing.T) {
	t.Run("friends can message each other", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		message, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)
		assert.Equal(t, "alice@x", message.SenderEmail())
		assert.Equal(t, "bob@x", message.RecipientEmail())
		assert.False(t, message.IsRead())
	})

	t.Run("non-friends fail with forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")

		_, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		assert.True(t, pkgerrors.IsForbidden(err))
	})

	t.Run("unknown recipient fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")

		_, err := env.messages.SendMessage(env.ctx, "alice@x", "ghost@x", "hi")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestGetConversationHistory(t *testing.T) {
	t.Run("includes both directions newest first", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		_, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = env.messages.SendMessage(env.ctx, "bob@x", "alice@x", "hello")
		require.NoError(t, err)

		history, err := env.messages.GetConversationHistory(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "hello", history[0].Content())
		assert.Equal(t, "hi", history[1].Content())
		assert.True(t, history[0].Timestamp().After(history[1].Timestamp()))
	})

	t.Run("excludes group and deleted messages", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		kept, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "kept")
		require.NoError(t, err)
		deleted, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "gone")
		require.NoError(t, err)
		require.NoError(t, env.messages.DeleteMessage(env.ctx, deleted.ID(), "alice@x"))

		group, err := env.groups.CreateGroup(env.ctx, "alice@x", "team", []string{"bob@x"})
		require.NoError(t, err)
		_, err = env.groups.SendGroupMessage(env.ctx, group.ID(), "alice@x", "group chatter")
		require.NoError(t, err)

		history, err := env.messages.GetConversationHistory(env.ctx, "alice@x", "bob@x")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, kept.ID(), history[0].ID())
	})

	t.Run("unknown other user fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")

		_, err := env.messages.GetConversationHistory(env.ctx, "alice@x", "ghost@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("unknown caller fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "bob@x")

		_, err := env.messages.GetConversationHistory(env.ctx, "ghost@x", "bob@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestMarkMessageAsRead(t *testing.T) {
	t.Run("recipient marks read, repeatable", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		sent, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)

		read, err := env.messages.MarkMessageAsRead(env.ctx, sent.ID(), "bob@x")
		require.NoError(t, err)
		assert.True(t, read.IsRead())

		again, err := env.messages.MarkMessageAsRead(env.ctx, sent.ID(), "bob@x")
		require.NoError(t, err)
		assert.True(t, again.IsRead())
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		sent, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)

		_, err = env.messages.MarkMessageAsRead(env.ctx, sent.ID(), "alice@x")
		assert.True(t, pkgerrors.IsForbidden(err))
	})

	t.Run("unknown message fails with not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "bob@x")

		_, err := env.messages.MarkMessageAsRead(env.ctx, "missing", "bob@x")
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestDeleteMessage(t *testing.T) {
	t.Run("third party cannot delete", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.registerUser(t, "mallory@x")
		env.befriend(t, "alice@x", "bob@x")

		sent, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)

		err = env.messages.DeleteMessage(env.ctx, sent.ID(), "mallory@x")
		assert.True(t, pkgerrors.IsForbidden(err))
	})

	t.Run("delete is repeatable", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		sent, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, env.messages.DeleteMessage(env.ctx, sent.ID(), "bob@x"))
		require.NoError(t, env.messages.DeleteMessage(env.ctx, sent.ID(), "bob@x"))
	})
}

func TestUnreadMessages(t *testing.T) {
	t.Run("count and list track read state", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.befriend(t, "alice@x", "bob@x")

		first, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "one")
		require.NoError(t, err)
		_, err = env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "two")
		require.NoError(t, err)

		count, err := env.messages.GetUnreadMessageCount(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		unread, err := env.messages.GetUnreadMessages(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Len(t, unread, 2)

		_, err = env.messages.MarkMessageAsRead(env.ctx, first.ID(), "bob@x")
		require.NoError(t, err)

		count, err = env.messages.GetUnreadMessageCount(env.ctx, "bob@x")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGetRecentConversations(t *testing.T) {
	t.Run("one entry per peer, newest first", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@x")
		env.registerUser(t, "bob@x")
		env.registerUser(t, "carol@x")
		env.befriend(t, "alice@x", "bob@x")
		env.befriend(t, "alice@x", "carol@x")

		_, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "old to bob")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = env.messages.SendMessage(env.ctx, "bob@x", "alice@x", "new from bob")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = env.messages.SendMessage(env.ctx, "alice@x", "carol@x", "to carol")
		require.NoError(t, err)

		recent, err := env.messages.GetRecentConversations(env.ctx, "alice@x")
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "to carol", recent[0].Content())
		assert.Equal(t, "new from bob", recent[1].Content())
	})
}

// End-to-end walk through the register, befriend, message, read, delete flow
func TestMessagingScenario(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register(env.ctx, "alice@x", "password1", "Alice", "A")
	require.NoError(t, err)
	_, _, err = env.auth.Register(env.ctx, "bob@x", "password2", "Bob", "B")
	require.NoError(t, err)

	_, err = env.friends.SendFriendRequest(env.ctx, "alice@x", "bob@x")
	require.NoError(t, err)

	pending, err := env.friends.GetPendingRequests(env.ctx, "bob@x")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, env.friends.AcceptFriendRequest(env.ctx, "bob@x", "alice@x"))

	alice, err := env.users.FindByEmail(env.ctx, "alice@x")
	require.NoError(t, err)
	bob, err := env.users.FindByEmail(env.ctx, "bob@x")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@x"}, alice.Friends())
	assert.Equal(t, []string{"alice@x"}, bob.Friends())

	sent, err := env.messages.SendMessage(env.ctx, "alice@x", "bob@x", "hi")
	require.NoError(t, err)

	history, err := env.messages.GetConversationHistory(env.ctx, "bob@x", "alice@x")
	require.NoError(t, err)
	require.Len(t, history, 1)

	count, err := env.messages.GetUnreadMessageCount(env.ctx, "bob@x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	read, err := env.messages.MarkMessageAsRead(env.ctx, sent.ID(), "bob@x")
	require.NoError(t, err)
	assert.True(t, read.IsRead())

	count, err = env.messages.GetUnreadMessageCount(env.ctx, "bob@x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, env.messages.DeleteMessage(env.ctx, sent.ID(), "alice@x"))

	history, err = env.messages.GetConversationHistory(env.ctx, "alice@x", "bob@x")
	require.NoError(t, err)
	assert.Empty(t, history)

	count, err = env.messages.GetUnreadMessageCount(env.ctx, "bob@x")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
