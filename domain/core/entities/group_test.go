package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

func TestNewGroup(t *testing.T) {
	t.Run("creator is always a member", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", []string{"bob@x"})
		require.NoError(t, err)

		assert.Equal(t, "carol@x", group.CreatorEmail())
		assert.Equal(t, []string{"bob@x", "carol@x"}, group.Members())
		assert.True(t, group.IsMember("carol@x"))
	})

	t.Run("creator in member list is not duplicated", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", []string{"carol@x", "bob@x"})
		require.NoError(t, err)

		assert.Equal(t, []string{"bob@x", "carol@x"}, group.Members())
	})

	t.Run("creator alone when member list empty", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"carol@x"}, group.Members())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewGroup("carol@x", "", nil)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty creator", func(t *testing.T) {
		_, err := NewGroup("", "team", nil)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("rejects empty member email", func(t *testing.T) {
		_, err := NewGroup("carol@x", "team", []string{""})
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestGroupAddMember(t *testing.T) {
	t.Run("adds a member", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", nil)
		require.NoError(t, err)

		require.NoError(t, group.AddMember("dave@x"))
		assert.True(t, group.IsMember("dave@x"))
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", []string{"bob@x"})
		require.NoError(t, err)

		require.NoError(t, group.AddMember("bob@x"))
		assert.Equal(t, []string{"bob@x", "carol@x"}, group.Members())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		group, err := NewGroup("carol@x", "team", nil)
		require.NoError(t, err)

		assert.True(t, pkgerrors.IsValidation(group.AddMember("")))
	})
}
