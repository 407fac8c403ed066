package handlers

import (
	"time"

	"github.com/AlenesK/howudoin/domain/core/entities"
)

// UserResponse is the public view of a user
type UserResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

func newUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		Email:     user.Email(),
		FirstName: user.FirstName(),
		LastName:  user.LastName(),
		CreatedAt: user.CreatedAt().Format(time.RFC3339),
	}
}

// FriendRequestResponse is the public view of a friend request
type FriendRequestResponse struct {
	ID            string `json:"id"`
	SenderEmail   string `json:"senderEmail"`
	ReceiverEmail string `json:"receiverEmail"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func newFriendRequestResponse(request *entities.FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:            request.ID(),
		SenderEmail:   request.SenderEmail(),
		ReceiverEmail: request.ReceiverEmail(),
		Status:        string(request.Status()),
		CreatedAt:     request.CreatedAt().Format(time.RFC3339),
	}
}

// GroupResponse is the public view of a group
type GroupResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CreatorEmail string   `json:"creatorEmail"`
	Members      []string `json:"members"`
	CreatedAt    string   `json:"createdAt"`
}

func newGroupResponse(group *entities.Group) GroupResponse {
	return GroupResponse{
		ID:           group.ID(),
		Name:         group.Name(),
		CreatorEmail: group.CreatorEmail(),
		Members:      group.Members(),
		CreatedAt:    group.CreatedAt().Format(time.RFC3339),
	}
}

// MessageResponse is the public view of a message
type MessageResponse struct {
	ID             string `json:"id"`
	SenderEmail    string `json:"senderEmail"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	GroupID        string `json:"groupId,omitempty"`
	Content        string `json:"content"`
	IsRead         bool   `json:"isRead"`
	Timestamp      string `json:"timestamp"`
	ReadAt         string `json:"readAt,omitempty"`
}

func newMessageResponse(message *entities.Message) MessageResponse {
	resp := MessageResponse{
		ID:             message.ID(),
		SenderEmail:    message.SenderEmail(),
		RecipientEmail: message.RecipientEmail(),
		GroupID:        message.GroupID(),
		Content:        message.Content(),
		IsRead:         message.IsRead(),
		Timestamp:      message.Timestamp().Format(time.RFC3339),
	}
	if readAt := message.ReadAt(); readAt != nil {
		resp.ReadAt = readAt.Format(time.RFC3339)
	}
	return resp
}

func newMessageResponses(messages []*entities.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, newMessageResponse(message))
	}
	return responses
}
