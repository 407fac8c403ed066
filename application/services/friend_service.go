package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// FriendService coordinates the friend-request lifecycle and the symmetric
// friendship relation it establishes.
type FriendService struct {
	users    ports.UserRepository
	requests ports.FriendRequestRepository
	uow      ports.FriendshipUnitOfWork
	logger   *zap.Logger
}

// NewFriendService creates a new friend service
func NewFriendService(
	users ports.UserRepository,
	requests ports.FriendRequestRepository,
	uow ports.FriendshipUnitOfWork,
	logger *zap.Logger,
) *FriendService {
	return &FriendService{
		users:    users,
		requests: requests,
		uow:      uow,
		logger:   logger,
	}
}

// SendFriendRequest creates a pending request from the requester to the target.
// The duplicate check is keyed by the exact ordered (sender, receiver) pair: a
// pending request in the opposite direction does not block a new one.
func (s *FriendService) SendFriendRequest(ctx context.Context, requesterEmail, targetEmail string) (*entities.FriendRequest, error) {
	if requesterEmail == targetEmail {
		return nil, pkgerrors.NewValidationError("cannot send friend request to yourself")
	}

	if _, err := s.users.FindByEmail(ctx, targetEmail); err != nil {
		return nil, err
	}

	requester, err := s.users.FindByEmail(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}

	if requester.HasFriend(targetEmail) {
		return nil, pkgerrors.NewValidationError("already friends with this user")
	}

	existing, err := s.requests.FindBySenderAndReceiver(ctx, requesterEmail, targetEmail)
	if err != nil && !pkgerrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.NewConflictError("friend request already sent")
	}

	request, err := entities.NewFriendRequest(requesterEmail, targetEmail)
	if err != nil {
		return nil, err
	}

	// The store enforces uniqueness on the (sender, receiver) pair, so a
	// concurrent duplicate still surfaces as a Conflict here.
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Friend request sent",
		zap.String("sender", requesterEmail),
		zap.String("receiver", targetEmail),
	)

	return request, nil
}

// AcceptFriendRequest accepts the pending request sent by requesterEmail to
// the accepter and establishes the friendship in both directions. The status
// write and both friend-set writes commit as one transaction.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, accepterEmail, requesterEmail string) error {
	request, err := s.requests.FindBySenderAndReceiver(ctx, requesterEmail, accepterEmail)
	if err != nil {
		return err
	}

	if err := request.Accept(); err != nil {
		return err
	}

	accepter, err := s.users.FindByEmail(ctx, accepterEmail)
	if err != nil {
		return err
	}
	requester, err := s.users.FindByEmail(ctx, requesterEmail)
	if err != nil {
		return err
	}

	if err := accepter.AddFriend(requesterEmail); err != nil {
		return err
	}
	if err := requester.AddFriend(accepterEmail); err != nil {
		return err
	}

	if err := s.uow.CommitAcceptance(ctx, request, accepter, requester); err != nil {
		return err
	}

	s.logger.Info("Friend request accepted",
		zap.String("sender", requesterEmail),
		zap.String("receiver", accepterEmail),
	)

	return nil
}

// GetFriendList returns the profile of every user in the caller's friend set.
// Friend entries whose backing user record is missing are skipped.
func (s *FriendService) GetFriendList(ctx context.Context, userEmail string) ([]*entities.User, error) {
	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	friends := make([]*entities.User, 0, len(user.Friends()))
	for _, friendEmail := range user.Friends() {
		friend, err := s.users.FindByEmail(ctx, friendEmail)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				s.logger.Warn("Friend entry has no backing user record",
					zap.String("user", userEmail),
					zap.String("friend", friendEmail),
				)
				continue
			}
			return nil, err
		}
		friends = append(friends, friend)
	}

	return friends, nil
}

// GetPendingRequests returns all pending requests addressed to the user
func (s *FriendService) GetPendingRequests(ctx context.Context, userEmail string) ([]*entities.FriendRequest, error) {
	return s.requests.FindByReceiverAndStatus(ctx, userEmail, entities.RequestPending)
}
