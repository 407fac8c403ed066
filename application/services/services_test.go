package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/domain/core/entities"
	"github.com/AlenesK/howudoin/infrastructure/persistence/memory"
	"github.com/AlenesK/howudoin/pkg/auth"
)

// testEnv wires every service over a shared in-memory store
type testEnv struct {
	ctx      context.Context
	store    *memory.Store
	users    *memory.UserRepository
	auth     *AuthService
	friends  *FriendService
	groups   *GroupService
	messages *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()

	users := memory.NewUserRepository(store)
	requests := memory.NewFriendRequestRepository(store)
	groups := memory.NewGroupRepository(store)
	messages := memory.NewMessageRepository(store)
	uow := memory.NewFriendshipUnitOfWork(store)

	tokens, err := auth.NewJWTGenerator(auth.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "howudoin-test",
		Expiry:    time.Hour,
	})
	require.NoError(t, err)

	return &testEnv{
		ctx:      context.Background(),
		store:    store,
		users:    users,
		auth:     NewAuthService(users, tokens, logger),
		friends:  NewFriendService(users, requests, uow, logger),
		groups:   NewGroupService(groups, users, messages, logger),
		messages: NewMessageService(messages, users, logger),
	}
}

// registerUser seeds a user directly, bypassing password hashing
func (e *testEnv) registerUser(t *testing.T, email string) {
	t.Helper()
	user, err := entities.NewUser(email, "Test", "User", "hash")
	require.NoError(t, err)
	require.NoError(t, e.users.Save(e.ctx, user))
}

// befriend establishes a friendship through the full request lifecycle
func (e *testEnv) befriend(t *testing.T, a, b string) {
	t.Helper()
	_, err := e.friends.SendFriendRequest(e.ctx, a, b)
	require.NoError(t, err)
	require.NoError(t, e.friends.AcceptFriendRequest(e.ctx, b, a))
}
