package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// GroupService manages group lifecycle, membership, and group messaging
type GroupService struct {
	groups   ports.GroupRepository
	users    ports.UserRepository
	messages ports.MessageRepository
	logger   *zap.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groups ports.GroupRepository,
	users ports.UserRepository,
	messages ports.MessageRepository,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		groups:   groups,
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

// CreateGroup creates a group owned by the creator. Every listed member must
// resolve to a registered user; the creator is added to the member set even
// when absent from the list.
func (s *GroupService) CreateGroup(ctx context.Context, creatorEmail, name string, memberEmails []string) (*entities.Group, error) {
	if _, err := s.users.FindByEmail(ctx, creatorEmail); err != nil {
		return nil, err
	}

	for _, memberEmail := range memberEmails {
		if _, err := s.users.FindByEmail(ctx, memberEmail); err != nil {
			return nil, err
		}
	}

	group, err := entities.NewGroup(creatorEmail, name, memberEmails)
	if err != nil {
		return nil, err
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("Group created",
		zap.String("groupId", group.ID()),
		zap.String("creator", creatorEmail),
		zap.Int("memberCount", len(group.Members())),
	)

	return group, nil
}

// AddMember adds a registered user to the group's member set. Any
// authenticated caller may add members; adding an existing member is a no-op.
func (s *GroupService) AddMember(ctx context.Context, groupID, memberEmail string) (*entities.Group, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, memberEmail); err != nil {
		return nil, err
	}

	if err := group.AddMember(memberEmail); err != nil {
		return nil, err
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("Member added to group",
		zap.String("groupId", groupID),
		zap.String("member", memberEmail),
	)

	return group, nil
}

// SendGroupMessage posts a message to the group on behalf of a member
func (s *GroupService) SendGroupMessage(ctx context.Context, groupID, senderEmail, content string) (*entities.Message, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsMember(senderEmail) {
		return nil, pkgerrors.NewForbiddenError("you are not a member of this group")
	}

	message, err := entities.NewGroupMessage(senderEmail, groupID, content)
	if err != nil {
		return nil, err
	}

	if err := s.messages.Save(ctx, message); err != nil {
		return nil, err
	}

	s.logger.Info("Group message sent",
		zap.String("groupId", groupID),
		zap.String("sender", senderEmail),
		zap.String("messageId", message.ID()),
	)

	return message, nil
}

// GetGroupMessages returns the group's message history, newest first.
// Membership is re-validated on every call.
func (s *GroupService) GetGroupMessages(ctx context.Context, groupID, callerEmail string) ([]*entities.Message, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsMember(callerEmail) {
		return nil, pkgerrors.NewForbiddenError("you are not a member of this group")
	}

	return s.messages.FindByGroupID(ctx, groupID)
}

// GetGroupMembers returns the group's member emails to a member
func (s *GroupService) GetGroupMembers(ctx context.Context, groupID, callerEmail string) ([]string, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsMember(callerEmail) {
		return nil, pkgerrors.NewForbiddenError("you are not a member of this group")
	}

	return group.Members(), nil
}

// GetGroupDetails returns the full group record to a member
func (s *GroupService) GetGroupDetails(ctx context.Context, groupID, callerEmail string) (*entities.Group, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !group.IsMember(callerEmail) {
		return nil, pkgerrors.NewForbiddenError("you are not a member of this group")
	}

	return group, nil
}

// GetUserGroups returns every group the user belongs to
func (s *GroupService) GetUserGroups(ctx context.Context, userEmail string) ([]*entities.Group, error) {
	if _, err := s.users.FindByEmail(ctx, userEmail); err != nil {
		return nil, err
	}

	return s.groups.FindByMember(ctx, userEmail)
}
