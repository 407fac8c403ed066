package entities

import (
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// Message is a direct or group message. Exactly one of recipientEmail and
// groupID is set, decided at construction. Deletion is soft: the record
// persists with the deleted flag set and is never physically removed.
type Message struct {
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

// NewDirectMessage creates an unread, undeleted message to a single recipient
func NewDirectMessage(senderEmail, recipientEmail, content string) (*Message, error) {
	if senderEmail == "" || recipientEmail == "" {
		return nil, pkgerrors.NewValidationError("sender and recipient emails are required")
	}
	if content == "" {
		return nil, pkgerrors.NewValidationError("message content cannot be empty")
	}

	return &Message{
		id:             uuid.New().String(),
		senderEmail:    senderEmail,
		recipientEmail: recipientEmail,
		content:        content,
		isGroupMessage: false,
		timestamp:      time.Now(),
	}, nil
}

// NewGroupMessage creates a message addressed to a group
func NewGroupMessage(senderEmail, groupID, content string) (*Message, error) {
	if senderEmail == "" || groupID == "" {
		return nil, pkgerrors.NewValidationError("sender email and group id are required")
	}
	if content == "" {
		return nil, pkgerrors.NewValidationError("message content cannot be empty")
	}

	return &Message{
		id:             uuid.New().String(),
		senderEmail:    senderEmail,
		groupID:        groupID,
		content:        content,
		isGroupMessage: true,
		timestamp:      time.Now(),
	}, nil
}

// ReconstructMessage rebuilds a message from repository data
func ReconstructMessage(
	id, senderEmail, recipientEmail, groupID, content string,
	isGroupMessage, isRead, isDeleted bool,
	timestamp time.Time,
	readAt, deletedAt *time.Time,
) *Message {
	return &Message{
		id:             id,
		senderEmail:    senderEmail,
		recipientEmail: recipientEmail,
		groupID:        groupID,
		content:        content,
		isGroupMessage: isGroupMessage,
		isRead:         isRead,
		isDeleted:      isDeleted,
		timestamp:      timestamp,
		readAt:         readAt,
		deletedAt:      deletedAt,
	}
}

// ID returns the message's unique identifier
func (m *Message) ID() string {
	return m.id
}

// SenderEmail returns the sending user's email
func (m *Message) SenderEmail() string {
	return m.senderEmail
}

// RecipientEmail returns the recipient's email; empty for group messages
func (m *Message) RecipientEmail() string {
	return m.recipientEmail
}

// GroupID returns the target group id; empty for direct messages
func (m *Message) GroupID() string {
	return m.groupID
}

// Content returns the message body
func (m *Message) Content() string {
	return m.content
}

// IsGroupMessage reports whether the message is addressed to a group
func (m *Message) IsGroupMessage() bool {
	return m.isGroupMessage
}

// IsRead reports whether the recipient has read the message.
// Only meaningful for direct messages.
func (m *Message) IsRead() bool {
	return m.isRead
}

// IsDeleted reports whether the message has been soft-deleted
func (m *Message) IsDeleted() bool {
	return m.isDeleted
}

// Timestamp returns when the message was sent
func (m *Message) Timestamp() time.Time {
	return m.timestamp
}

// ReadAt returns when the message was read, nil if unread
func (m *Message) ReadAt() *time.Time {
	return m.readAt
}

// DeletedAt returns when the message was deleted, nil if not deleted
func (m *Message) DeletedAt() *time.Time {
	return m.deletedAt
}

// MarkRead marks the message read on behalf of the caller.
// Only the recipient may read a message; repeated calls re-stamp readAt.
func (m *Message) MarkRead(callerEmail string) error {
	if m.recipientEmail == "" || m.recipientEmail != callerEmail {
		return pkgerrors.NewForbiddenError("cannot mark this message as read")
	}

	now := time.Now()
	m.isRead = true
	m.readAt = &now
	return nil
}

// SoftDelete marks the message deleted on behalf of the caller.
// Only the sender or the recipient may delete; repeated calls succeed.
func (m *Message) SoftDelete(callerEmail string) error {
	if callerEmail != m.senderEmail && (m.recipientEmail == "" || callerEmail != m.recipientEmail) {
		return pkgerrors.NewForbiddenError("cannot delete this message")
	}

	now := time.Now()
	m.isDeleted = true
	m.deletedAt = &now
	return nil
}
