package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestNewDirectMessage(t *testing.T) {
	t.Run("creates unread direct message", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		assert.NotEmpty(t, message.ID())
		assert.Equal(t, "alice@x", message.SenderEmail())
		assert.Equal(t, "bob@x", message.RecipientEmail())
		assert.Empty(t, message.GroupID())
		assert.False(t, message.IsGroupMessage())
		assert.False(t, message.IsRead())
		assert.False(t, message.IsDeleted())
		assert.Nil(t, message.ReadAt())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewDirectMessage("alice@x", "bob@x", "")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects missing participants", func(t *testing.T) {
		_, err := NewDirectMessage("", "bob@x", "hi")
		assert.True(t, pkgerrors.IsValidation(err))

		_, err = NewDirectMessage("alice@x", "", "hi")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestNewGroupMessage(t *testing.T) {
	t.Run("creates group message without recipient", func(t *testing.T) {
		message, err := NewGroupMessage("carol@x", "group-1", "hello team")
		require.NoError(t, err)

		assert.Equal(t, "group-1", message.GroupID())
		assert.Empty(t, message.RecipientEmail())
		assert.True(t, message.IsGroupMessage())
	})

	t.Run("rejects missing group id", func(t *testing.T) {
		_, err := NewGroupMessage("carol@x", "", "hello")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestMessageMarkRead(t *testing.T) {
	t.Run("recipient can mark read", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, message.MarkRead("bob@x"))
		assert.True(t, message.IsRead())
		assert.NotNil(t, message.ReadAt())
	})

	t.Run("repeated calls succeed", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, message.MarkRead("bob@x"))
		require.NoError(t, message.MarkRead("bob@x"))
		assert.True(t, message.IsRead())
	})

	t.Run("sender cannot mark read", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		assert.True(t, pkgerrors.IsForbidden(message.MarkRead("alice@x")))
		assert.False(t, message.IsRead())
	})

	t.Run("group messages cannot be marked read", func(t *testing.T) {
		message, err := NewGroupMessage("carol@x", "group-1", "hello")
		require.NoError(t, err)

		assert.True(t, pkgerrors.IsForbidden(message.MarkRead("carol@x")))
	})
}

func TestMessageSoftDelete(t *testing.T) {
	t.Run("sender can delete", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, message.SoftDelete("alice@x"))
		assert.True(t, message.IsDeleted())
		assert.NotNil(t, message.DeletedAt())
	})

	t.Run("recipient can delete", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, message.SoftDelete("bob@x"))
		assert.True(t, message.IsDeleted())
	})

	t.Run("third party cannot delete", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		assert.True(t, pkgerrors.IsForbidden(message.SoftDelete("mallory@x")))
		assert.False(t, message.IsDeleted())
	})

	t.Run("repeated deletes succeed", func(t *testing.T) {
		message, err := NewDirectMessage("alice@x", "bob@x", "hi")
		require.NoError(t, err)

		require.NoError(t, message.SoftDelete("alice@x"))
		require.NoError(t, message.SoftDelete("alice@x"))
		assert.True(t, message.IsDeleted())
	})

	t.Run("group message sender can delete", func(t *testing.T) {
		message, err := NewGroupMessage("carol@x", "group-1", "hello")
		require.NoError(t, err)

		require.NoError(t, message.SoftDelete("carol@x"))
		assert.True(t, message.IsDeleted())
	})
}
