package ports

import (
	"context"

	"github.com/AlenesK/howudoin/domain/core/entities"
)

// UserRepository is the UserDirectory port.
// The core never mutates users except through the friend set.
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *entities.User) error

	// FindByEmail retrieves a user by email, or a NotFound error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Exists reports whether a user with the given email is registered
	Exists(ctx context.Context, email string) (bool, error)
}

// FriendRequestRepository defines the interface for friend request persistence
type FriendRequestRepository interface {
	// Save persists a friend request. Creating a request for a (sender, receiver)
	// pair that already has one fails with a Conflict error; the uniqueness
	// constraint is enforced by the store, not by a check-then-insert.
	Save(ctx context.Context, request *entities.FriendRequest) error

	// FindBySenderAndReceiver retrieves the request for the exact ordered pair
	FindBySenderAndReceiver(ctx context.Context, senderEmail, receiverEmail string) (*entities.FriendRequest, error)

	// FindByReceiverAndStatus retrieves all requests addressed to a user in a given status
	FindByReceiverAndStatus(ctx context.Context, receiverEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error)

	// FindBySenderAndStatus retrieves all requests sent by a user in a given status
	FindBySenderAndStatus(ctx context.Context, senderEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error)
}

// GroupRepository defines the interface for group persistence
type GroupRepository interface {
	// Save persists a group (create or update)
	Save(ctx context.Context, group *entities.Group) error

	// FindByID retrieves a group by id, or a NotFound error
	FindByID(ctx context.Context, groupID string) (*entities.Group, error)

	// FindByMember retrieves all groups whose member set contains the user
	FindByMember(ctx context.Context, memberEmail string) ([]*entities.Group, error)
}

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	// Save persists a message (create or update)
	Save(ctx context.Context, message *entities.Message) error

	// FindByID retrieves a message by id, or a NotFound error
	FindByID(ctx context.Context, messageID string) (*entities.Message, error)

	// FindConversation retrieves non-group, non-deleted messages exchanged
	// between the two users in either direction, sorted by timestamp descending
	FindConversation(ctx context.Context, userEmail, otherEmail string) ([]*entities.Message, error)

	// FindUnreadByRecipient retrieves unread, undeleted messages addressed to the user
	FindUnreadByRecipient(ctx context.Context, recipientEmail string) ([]*entities.Message, error)

	// CountUnreadByRecipient counts unread, undeleted messages addressed to the user
	CountUnreadByRecipient(ctx context.Context, recipientEmail string) (int64, error)

	// FindByGroupID retrieves a group's messages sorted by timestamp descending.
	// Soft-deleted messages stay in group history.
	FindByGroupID(ctx context.Context, groupID string) ([]*entities.Message, error)

	// FindRecentByParticipant retrieves messages where the user is sender or
	// recipient, deduplicated by conversation peer (keeping each peer's newest
	// message), sorted by timestamp descending
	FindRecentByParticipant(ctx context.Context, userEmail string) ([]*entities.Message, error)
}

// FriendshipUnitOfWork commits the multi-record mutation of accepting a
// friend request: the request-status write and both users' friend-set writes
// land in a single transaction or not at all.
type FriendshipUnitOfWork interface {
	CommitAcceptance(ctx context.Context, request *entities.FriendRequest, accepter, requester *entities.User) error
}
