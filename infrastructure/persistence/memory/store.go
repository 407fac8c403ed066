// Package memory provides an in-memory implementation of the persistence
// ports for tests and local development. All operations are safe for
// concurrent use and enforce the same constraints as the DynamoDB backend,
// including the friend-request pair uniqueness and the atomic acceptance
// commit.
package memory

import (
	"sync"
	"time"

	"github.com/AlenesK/howudoin/domain/core/entities"
)

// Store holds all records behind a single lock. Repositories created from
// the same store share its data, so one instance backs a full service wiring.
type Store struct {
	mu       sync.RWMutex
	users    map[string]userRecord
	requests map[string]requestRecord // keyed by sender|receiver
	groups   map[string]groupRecord
	messages map[string]messageRecord
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:    make(map[string]userRecord),
		requests: make(map[string]requestRecord),
		groups:   make(map[string]groupRecord),
		messages: make(map[string]messageRecord),
	}
}

func pairKey(senderEmail, receiverEmail string) string {
	return senderEmail + "|" + receiverEmail
}

// Records are plain-value snapshots; entities are rebuilt on every read so
// callers never share mutable state with the store.

type userRecord struct {
	email        string
	firstName    string
	lastName     string
	passwordHash string
	friends      []string
	createdAt    time.Time
	updatedAt    time.Time
}

func snapshotUser(u *entities.User) userRecord {
	return userRecord{
		email:        u.Email(),
		firstName:    u.FirstName(),
		lastName:     u.LastName(),
		passwordHash: u.PasswordHash(),
		friends:      u.Friends(),
		createdAt:    u.CreatedAt(),
		updatedAt:    u.UpdatedAt(),
	}
}

func restoreUser(rec userRecord) *entities.User {
	return entities.ReconstructUser(rec.email, rec.firstName, rec.lastName, rec.passwordHash, rec.friends, rec.createdAt, rec.updatedAt)
}

type requestRecord struct {
	id            string
	senderEmail   string
	receiverEmail string
	status        entities.RequestStatus
	createdAt     time.Time
	updatedAt     time.Time
}

func snapshotRequest(r *entities.FriendRequest) requestRecord {
	return requestRecord{
		id:            r.ID(),
		senderEmail:   r.SenderEmail(),
		receiverEmail: r.ReceiverEmail(),
		status:        r.Status(),
		createdAt:     r.CreatedAt(),
		updatedAt:     r.UpdatedAt(),
	}
}

func restoreRequest(rec requestRecord) *entities.FriendRequest {
	return entities.ReconstructFriendRequest(rec.id, rec.senderEmail, rec.receiverEmail, rec.status, rec.createdAt, rec.updatedAt)
}

type groupRecord struct {
	id           string
	name         string
	creatorEmail string
	members      []string
	createdAt    time.Time
	updatedAt    time.Time
}

func snapshotGroup(g *entities.Group) groupRecord {
	return groupRecord{
		id:           g.ID(),
		name:         g.Name(),
		creatorEmail: g.CreatorEmail(),
		members:      g.Members(),
		createdAt:    g.CreatedAt(),
		updatedAt:    g.UpdatedAt(),
	}
}

func restoreGroup(rec groupRecord) *entities.Group {
	return entities.ReconstructGroup(rec.id, rec.name, rec.creatorEmail, rec.members, rec.createdAt, rec.updatedAt)
}

type messageRecord struct {
	id             string
	senderEmail    string
	recipientEmail string
	groupID        string
	content        string
	isGroupMessage bool
	isRead         bool
	isDeleted      bool
	timestamp      time.Time
	readAt         *time.Time
	deletedAt      *time.Time
}

func snapshotMessage(m *entities.Message) messageRecord {
	return messageRecord{
		id:             m.ID(),
		senderEmail:    m.SenderEmail(),
		recipientEmail: m.RecipientEmail(),
		groupID:        m.GroupID(),
		content:        m.Content(),
		isGroupMessage: m.IsGroupMessage(),
		isRead:         m.IsRead(),
		isDeleted:      m.IsDeleted(),
		timestamp:      m.Timestamp(),
		readAt:         copyTime(m.ReadAt()),
		deletedAt:      copyTime(m.DeletedAt()),
	}
}

func restoreMessage(rec messageRecord) *entities.Message {
	return entities.ReconstructMessage(
		rec.id, rec.senderEmail, rec.recipientEmail, rec.groupID, rec.content,
		rec.isGroupMessage, rec.isRead, rec.isDeleted,
		rec.timestamp, copyTime(rec.readAt), copyTime(rec.deletedAt),
	)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
