package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// MessageService handles direct messaging between friends
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	logger   *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

// SendMessage sends a direct message. The sender and recipient must be
// friends at send time; the friendship check reads the sender's friend set.
func (s *MessageService) SendMessage(ctx context.Context, senderEmail, recipientEmail, content string) (*entities.Message, error) {
	sender, err := s.users.FindByEmail(ctx, senderEmail)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, recipientEmail); err != nil {
		return nil, err
	}

	if !sender.HasFriend(recipientEmail) {
		return nil, pkgerrors.NewForbiddenError("you can only message your friends")
	}

	message, err := entities.NewDirectMessage(senderEmail, recipientEmail, content)
	if err != nil {
		return nil, err
	}

	if err := s.messages.Save(ctx, message); err != nil {
		return nil, err
	}

	s.logger.Info("Message sent",
		zap.String("sender", senderEmail),
		zap.String("recipient", recipientEmail),
		zap.String("messageId", message.ID()),
	)

	return message, nil
}

// GetConversationHistory returns the direct messages exchanged between the
// caller and the other user in either direction, newest first. Both parties
// must exist. Group and deleted messages never appear.
func (s *MessageService) GetConversationHistory(ctx context.Context, userEmail, otherEmail string) ([]*entities.Message, error) {
	if _, err := s.users.FindByEmail(ctx, userEmail); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, otherEmail); err != nil {
		return nil, err
	}

	return s.messages.FindConversation(ctx, userEmail, otherEmail)
}

// MarkMessageAsRead marks a message read on behalf of the caller.
// Only the recipient may mark a message; repeated calls succeed.
func (s *MessageService) MarkMessageAsRead(ctx context.Context, messageID, callerEmail string) (*entities.Message, error) {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := message.MarkRead(callerEmail); err != nil {
		return nil, err
	}

	if err := s.messages.Save(ctx, message); err != nil {
		return nil, err
	}

	s.logger.Debug("Message marked as read",
		zap.String("messageId", messageID),
		zap.String("reader", callerEmail),
	)

	return message, nil
}

// DeleteMessage soft-deletes a message on behalf of the caller.
// Only the sender or recipient may delete; repeated calls succeed.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID, callerEmail string) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}

	if err := message.SoftDelete(callerEmail); err != nil {
		return err
	}

	if err := s.messages.Save(ctx, message); err != nil {
		return err
	}

	s.logger.Info("Message deleted",
		zap.String("messageId", messageID),
		zap.String("deleter", callerEmail),
	)

	return nil
}

// GetUnreadMessageCount returns how many unread direct messages await the user
func (s *MessageService) GetUnreadMessageCount(ctx context.Context, userEmail string) (int64, error) {
	return s.messages.CountUnreadByRecipient(ctx, userEmail)
}

// GetUnreadMessages returns the user's unread direct messages, newest first
func (s *MessageService) GetUnreadMessages(ctx context.Context, userEmail string) ([]*entities.Message, error) {
	return s.messages.FindUnreadByRecipient(ctx, userEmail)
}

// GetRecentConversations returns the newest message from each conversation
// the user participates in, newest first.
func (s *MessageService) GetRecentConversations(ctx context.Context, userEmail string) ([]*entities.Message, error) {
	return s.messages.FindRecentByParticipant(ctx, userEmail)
}
