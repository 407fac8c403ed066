package memory

import (
	"context"
	"sort"

	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// UserRepository implements ports.UserRepository over an in-memory store
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the given store
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Save persists a user (create or update)
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.Email()] = snapshotUser(user)
	return nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.users[email]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return restoreUser(rec), nil
}

// Exists reports whether a user with the given email is registered
func (r *UserRepository) Exists(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.users[email]
	return ok, nil
}

// FriendRequestRepository implements ports.FriendRequestRepository over an
// in-memory store
type FriendRequestRepository struct {
	store *Store
}

// NewFriendRequestRepository creates a friend request repository backed by the given store
func NewFriendRequestRepository(store *Store) *FriendRequestRepository {
	return &FriendRequestRepository{store: store}
}

// Save persists a friend request. Creating a second request for the same
// (sender, receiver) pair fails with a Conflict error; updating the existing
// request is allowed.
func (r *FriendRequestRepository) Save(ctx context.Context, request *entities.FriendRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := pairKey(request.SenderEmail(), request.ReceiverEmail())
	if existing, ok := r.store.requests[key]; ok && existing.id != request.ID() {
		return pkgerrors.NewConflictError("friend request already sent")
	}

	r.store.requests[key] = snapshotRequest(request)
	return nil
}

// FindBySenderAndReceiver retrieves the request for the exact ordered pair
func (r *FriendRequestRepository) FindBySenderAndReceiver(ctx context.Context, senderEmail, receiverEmail string) (*entities.FriendRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.requests[pairKey(senderEmail, receiverEmail)]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("friend request")
	}
	return restoreRequest(rec), nil
}

// FindByReceiverAndStatus retrieves all requests addressed to a user in a given status
func (r *FriendRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.FriendRequest
	for _, rec := range r.store.requests {
		if rec.receiverEmail == receiverEmail && rec.status == status {
			result = append(result, restoreRequest(rec))
		}
	}
	sortRequestsDesc(result)
	return result, nil
}

// FindBySenderAndStatus retrieves all requests sent by a user in a given status
func (r *FriendRequestRepository) FindBySenderAndStatus(ctx context.Context, senderEmail string, status entities.RequestStatus) ([]*entities.FriendRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.FriendRequest
	for _, rec := range r.store.requests {
		if rec.senderEmail == senderEmail && rec.status == status {
			result = append(result, restoreRequest(rec))
		}
	}
	sortRequestsDesc(result)
	return result, nil
}

// GroupRepository implements ports.GroupRepository over an in-memory store
type GroupRepository struct {
	store *Store
}

// NewGroupRepository creates a group repository backed by the given store
func NewGroupRepository(store *Store) *GroupRepository {
	return &GroupRepository{store: store}
}

// Save persists a group (create or update)
func (r *GroupRepository) Save(ctx context.Context, group *entities.Group) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.groups[group.ID()] = snapshotGroup(group)
	return nil
}

// FindByID retrieves a group by id
func (r *GroupRepository) FindByID(ctx context.Context, groupID string) (*entities.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.groups[groupID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("group")
	}
	return restoreGroup(rec), nil
}

// FindByMember retrieves all groups whose member set contains the user
func (r *GroupRepository) FindByMember(ctx context.Context, memberEmail string) ([]*entities.Group, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.Group
	for _, rec := range r.store.groups {
		for _, m := range rec.members {
			if m == memberEmail {
				result = append(result, restoreGroup(rec))
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

// MessageRepository implements ports.MessageRepository over an in-memory store
type MessageRepository struct {
	store *Store
}

// NewMessageRepository creates a message repository backed by the given store
func NewMessageRepository(store *Store) *MessageRepository {
	return &MessageRepository{store: store}
}

// Save persists a message (create or update)
func (r *MessageRepository) Save(ctx context.Context, message *entities.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages[message.ID()] = snapshotMessage(message)
	return nil
}

// FindByID retrieves a message by id
func (r *MessageRepository) FindByID(ctx context.Context, messageID string) (*entities.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.messages[messageID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("message")
	}
	return restoreMessage(rec), nil
}

// FindConversation retrieves non-group, undeleted messages exchanged between
// the two users in either direction, newest first
func (r *MessageRepository) FindConversation(ctx context.Context, userEmail, otherEmail string) ([]*entities.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.Message
	for _, rec := range r.store.messages {
		if rec.isGroupMessage || rec.isDeleted {
			continue
		}
		forward := rec.senderEmail == userEmail && rec.recipientEmail == otherEmail
		backward := rec.senderEmail == otherEmail && rec.recipientEmail == userEmail
		if forward || backward {
			result = append(result, restoreMessage(rec))
		}
	}
	sortMessagesDesc(result)
	return result, nil
}

// FindUnreadByRecipient retrieves unread, undeleted messages addressed to the user
func (r *MessageRepository) FindUnreadByRecipient(ctx context.Context, recipientEmail string) ([]*entities.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.Message
	for _, rec := range r.store.messages {
		if rec.recipientEmail == recipientEmail && !rec.isRead && !rec.isDeleted {
			result = append(result, restoreMessage(rec))
		}
	}
	sortMessagesDesc(result)
	return result, nil
}

// CountUnreadByRecipient counts unread, undeleted messages addressed to the user
func (r *MessageRepository) CountUnreadByRecipient(ctx context.Context, recipientEmail string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, rec := range r.store.messages {
		if rec.recipientEmail == recipientEmail && !rec.isRead && !rec.isDeleted {
			count++
		}
	}
	return count, nil
}

// FindByGroupID retrieves a group's messages, newest first. Group history
// keeps soft-deleted messages.
func (r *MessageRepository) FindByGroupID(ctx context.Context, groupID string) ([]*entities.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entities.Message
	for _, rec := range r.store.messages {
		if rec.isGroupMessage && rec.groupID == groupID {
			result = append(result, restoreMessage(rec))
		}
	}
	sortMessagesDesc(result)
	return result, nil
}

// FindRecentByParticipant retrieves the newest undeleted direct message per
// conversation peer, newest first
func (r *MessageRepository) FindRecentByParticipant(ctx context.Context, userEmail string) ([]*entities.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	newestByPeer := make(map[string]messageRecord)
	for _, rec := range r.store.messages {
		if rec.isGroupMessage || rec.isDeleted {
			continue
		}

		var peer string
		switch userEmail {
		case rec.senderEmail:
			peer = rec.recipientEmail
		case rec.recipientEmail:
			peer = rec.senderEmail
		default:
			continue
		}

		if newest, ok := newestByPeer[peer]; !ok || rec.timestamp.After(newest.timestamp) {
			newestByPeer[peer] = rec
		}
	}

	result := make([]*entities.Message, 0, len(newestByPeer))
	for _, rec := range newestByPeer {
		result = append(result, restoreMessage(rec))
	}
	sortMessagesDesc(result)
	return result, nil
}

// FriendshipUnitOfWork implements ports.FriendshipUnitOfWork over an
// in-memory store
type FriendshipUnitOfWork struct {
	store *Store
}

// NewFriendshipUnitOfWork creates a unit of work backed by the given store
func NewFriendshipUnitOfWork(store *Store) *FriendshipUnitOfWork {
	return &FriendshipUnitOfWork{store: store}
}

// CommitAcceptance writes the accepted request and both updated friend sets
// under a single lock acquisition
func (u *FriendshipUnitOfWork) CommitAcceptance(ctx context.Context, request *entities.FriendRequest, accepter, requester *entities.User) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.store.requests[pairKey(request.SenderEmail(), request.ReceiverEmail())] = snapshotRequest(request)
	u.store.users[accepter.Email()] = snapshotUser(accepter)
	u.store.users[requester.Email()] = snapshotUser(requester)
	return nil
}

func sortRequestsDesc(requests []*entities.FriendRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt().After(requests[j].CreatedAt())
	})
}

func sortMessagesDesc(messages []*entities.Message) {
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp().After(messages[j].Timestamp())
	})
}
