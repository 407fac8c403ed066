package entities

import (
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// RequestStatus represents the state of a friend request
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// FriendRequest is a directed proposal from one user to another.
// ACCEPTED and REJECTED are terminal states.
type FriendRequest struct {
	id            string
	senderEmail   string
	receiverEmail string
	status        RequestStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewFriendRequest creates a pending request with validation
func NewFriendRequest(senderEmail, receiverEmail string) (*FriendRequest, error) {
	if senderEmail == "" || receiverEmail == "" {
		return nil, pkgerrors.NewValidationError("sender and receiver emails are required")
	}
	if senderEmail == receiverEmail {
		return nil, pkgerrors.NewValidationError("cannot send friend request to yourself")
	}

	now := time.Now()
	return &FriendRequest{
		id:            uuid.New().String(),
		senderEmail:   senderEmail,
		receiverEmail: receiverEmail,
		status:        RequestPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructFriendRequest rebuilds a request from repository data
func ReconstructFriendRequest(id, senderEmail, receiverEmail string, status RequestStatus, createdAt, updatedAt time.Time) *FriendRequest {
	return &FriendRequest{
		id:            id,
		senderEmail:   senderEmail,
		receiverEmail: receiverEmail,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the request's unique identifier
func (r *FriendRequest) ID() string {
	return r.id
}

// SenderEmail returns the proposing user's email
func (r *FriendRequest) SenderEmail() string {
	return r.senderEmail
}

// ReceiverEmail returns the receiving user's email
func (r *FriendRequest) ReceiverEmail() string {
	return r.receiverEmail
}

// Status returns the current request status
func (r *FriendRequest) Status() RequestStatus {
	return r.status
}

// IsPending reports whether the request is still open
func (r *FriendRequest) IsPending() bool {
	return r.status == RequestPending
}

// Accept transitions the request to ACCEPTED. Only pending requests can be accepted.
func (r *FriendRequest) Accept() error {
	if r.status != RequestPending {
		return pkgerrors.NewValidationError("friend request already processed")
	}

	r.status = RequestAccepted
	r.updatedAt = time.Now()
	return nil
}

// Reject transitions the request to REJECTED. Only pending requests can be rejected.
func (r *FriendRequest) Reject() error {
	if r.status != RequestPending {
		return pkgerrors.NewValidationError("friend request already processed")
	}

	r.status = RequestRejected
	r.updatedAt = time.Now()
	return nil
}

// CreatedAt returns when the request was created
func (r *FriendRequest) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the request last changed state
func (r *FriendRequest) UpdatedAt() time.Time {
	return r.updatedAt
}
