package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestNewFriendRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		request, err := NewFriendRequest("alice@x", "bob@x")
		require.NoError(t, err)

		assert.NotEmpty(t, request.ID())
		assert.Equal(t, "alice@x", request.SenderEmail())
		assert.Equal(t, "bob@x", request.ReceiverEmail())
		assert.Equal(t, RequestPending, request.Status())
		assert.True(t, request.IsPending())
	})

	t.Run("rejects self request", func(t *testing.T) {
		_, err := NewFriendRequest("alice@x", "alice@x")
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty emails", func(t *testing.T) {
		_, err := NewFriendRequest("", "bob@x")
		assert.True(t, pkgerrors.IsValidation(err))

		_, err = NewFriendRequest("alice@x", "")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestFriendRequestLifecycle(t *testing.T) {
	t.Run("accept transitions pending to accepted", func(t *testing.T) {
		request, err := NewFriendRequest("alice@x", "bob@x")
		require.NoError(t, err)

		require.NoError(t, request.Accept())
		assert.Equal(t, RequestAccepted, request.Status())
		assert.False(t, request.IsPending())
	})

	t.Run("reject transitions pending to rejected", func(t *testing.T) {
		request, err := NewFriendRequest("alice@x", "bob@x")
		require.NoError(t, err)

		require.NoError(t, request.Reject())
		assert.Equal(t, RequestRejected, request.Status())
	})

	t.Run("accepted is terminal", func(t *testing.T) {
		request, err := NewFriendRequest("alice@x", "bob@x")
		require.NoError(t, err)
		require.NoError(t, request.Accept())

		assert.True(t, pkgerrors.IsValidation(request.Accept()))
		assert.True(t, pkgerrors.IsValidation(request.Reject()))
		assert.Equal(t, RequestAccepted, request.Status())
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		request, err := NewFriendRequest("alice@x", "bob@x")
		require.NoError(t, err)
		require.NoError(t, request.Reject())

		assert.True(t, pkgerrors.IsValidation(request.Accept()))
		assert.True(t, pkgerrors.IsValidation(request.Reject()))
		assert.Equal(t, RequestRejected, request.Status())
	})
}
