// Package dynamodb implements the persistence ports on a single DynamoDB
// table. Item shapes and key layout:
//
//	USER#<email>            / PROFILE   user record with friend set
//	REQUEST#<sender>|<recv> / REQUEST   friend request, PK enforces pair uniqueness
//	GROUP#<id>              / METADATA  group record with member list
//	GROUP#<id>              / MEMBER#<email>  membership item for GSI lookups
//	MSG#<id>                / MESSAGE   direct or group message
//
// GSI1 serves conversation and group-message history, GSI2 recipient-side
// message queries and received requests, GSI3 sender-side message queries and
// sent requests. Direct messages carry all three index keys; group messages
// only GSI1, so participant queries never see them.
package dynamodb

import (
	"fmt"
	"sort"
	"time"

	"github.com/AlenesK/howudoin/domain/core/entities"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
	"github.com/AlenesK/howudoin/pkg/utils"
)

// tsLayout is fixed-width so formatted timestamps sort lexicographically
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) (time.Time, error) {
	return utils.ParseRFC3339(s)
}

func userPK(email string) string {
	return "USER#" + email
}

func requestPK(senderEmail, receiverEmail string) string {
	return fmt.Sprintf("REQUEST#%s|%s", senderEmail, receiverEmail)
}

func groupPK(groupID string) string {
	return "GROUP#" + groupID
}

func messagePK(messageID string) string {
	return "MSG#" + messageID
}

// conversationKey is the unordered pair key shared by both directions of a
// direct-message conversation
func conversationKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return fmt.Sprintf("CONV#%s|%s", pair[0], pair[1])
}

type userItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	Email        string   `dynamodbav:"Email"`
	FirstName    string   `dynamodbav:"FirstName"`
	LastName     string   `dynamodbav:"LastName"`
	PasswordHash string   `dynamodbav:"PasswordHash"`
	Friends      []string `dynamodbav:"Friends,omitempty"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
	UpdatedAt    string   `dynamodbav:"UpdatedAt"`
}

func newUserItem(u *entities.User) userItem {
	return userItem{
		PK:           userPK(u.Email()),
		SK:           "PROFILE",
		EntityType:   "USER",
		Email:        u.Email(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		PasswordHash: u.PasswordHash(),
		Friends:      u.Friends(),
		CreatedAt:    formatTS(u.CreatedAt()),
		UpdatedAt:    formatTS(u.UpdatedAt()),
	}
}

func (it userItem) toEntity() (*entities.User, error) {
	createdAt, err := parseTS(it.CreatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid user created timestamp")
	}
	updatedAt, err := parseTS(it.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid user updated timestamp")
	}
	return entities.ReconstructUser(it.Email, it.FirstName, it.LastName, it.PasswordHash, it.Friends, createdAt, updatedAt), nil
}

type requestItem struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	GSI2PK        string `dynamodbav:"GSI2PK"`
	GSI2SK        string `dynamodbav:"GSI2SK"`
	GSI3PK        string `dynamodbav:"GSI3PK"`
	GSI3SK        string `dynamodbav:"GSI3SK"`
	EntityType    string `dynamodbav:"EntityType"`
	RequestID     string `dynamodbav:"RequestID"`
	SenderEmail   string `dynamodbav:"SenderEmail"`
	ReceiverEmail string `dynamodbav:"ReceiverEmail"`
	Status        string `dynamodbav:"Status"`
	CreatedAt     string `dynamodbav:"CreatedAt"`
	UpdatedAt     string `dynamodbav:"UpdatedAt"`
}

func newRequestItem(r *entities.FriendRequest) requestItem {
	statusKey := fmt.Sprintf("STATUS#%s#%s", r.Status(), formatTS(r.CreatedAt()))
	return requestItem{
		PK:            requestPK(r.SenderEmail(), r.ReceiverEmail()),
		SK:            "REQUEST",
		GSI2PK:        "RECVREQ#" + r.ReceiverEmail(),
		GSI2SK:        statusKey,
		GSI3PK:        "SENTREQ#" + r.SenderEmail(),
		GSI3SK:        statusKey,
		EntityType:    "FRIEND_REQUEST",
		RequestID:     r.ID(),
		SenderEmail:   r.SenderEmail(),
		ReceiverEmail: r.ReceiverEmail(),
		Status:        string(r.Status()),
		CreatedAt:     formatTS(r.CreatedAt()),
		UpdatedAt:     formatTS(r.UpdatedAt()),
	}
}

func (it requestItem) toEntity() (*entities.FriendRequest, error) {
	createdAt, err := parseTS(it.CreatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid request created timestamp")
	}
	updatedAt, err := parseTS(it.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid request updated timestamp")
	}
	return entities.ReconstructFriendRequest(it.RequestID, it.SenderEmail, it.ReceiverEmail, entities.RequestStatus(it.Status), createdAt, updatedAt), nil
}

type groupItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	GroupID      string   `dynamodbav:"GroupID"`
	Name         string   `dynamodbav:"Name"`
	CreatorEmail string   `dynamodbav:"CreatorEmail"`
	Members      []string `dynamodbav:"Members"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
	UpdatedAt    string   `dynamodbav:"UpdatedAt"`
}

func newGroupItem(g *entities.Group) groupItem {
	return groupItem{
		PK:           groupPK(g.ID()),
		SK:           "METADATA",
		EntityType:   "GROUP",
		GroupID:      g.ID(),
		Name:         g.Name(),
		CreatorEmail: g.CreatorEmail(),
		Members:      g.Members(),
		CreatedAt:    formatTS(g.CreatedAt()),
		UpdatedAt:    formatTS(g.UpdatedAt()),
	}
}

func (it groupItem) toEntity() (*entities.Group, error) {
	createdAt, err := parseTS(it.CreatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid group created timestamp")
	}
	updatedAt, err := parseTS(it.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid group updated timestamp")
	}
	return entities.ReconstructGroup(it.GroupID, it.Name, it.CreatorEmail, it.Members, createdAt, updatedAt), nil
}

// membershipItem projects a group's member onto GSI2 so FindByMember can
// query groups by member email
type membershipItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	GSI2PK      string `dynamodbav:"GSI2PK"`
	GSI2SK      string `dynamodbav:"GSI2SK"`
	EntityType  string `dynamodbav:"EntityType"`
	GroupID     string `dynamodbav:"GroupID"`
	MemberEmail string `dynamodbav:"MemberEmail"`
}

func newMembershipItem(groupID, memberEmail string) membershipItem {
	return membershipItem{
		PK:          groupPK(groupID),
		SK:          "MEMBER#" + memberEmail,
		GSI2PK:      "MEMBER#" + memberEmail,
		GSI2SK:      groupPK(groupID),
		EntityType:  "GROUP_MEMBER",
		GroupID:     groupID,
		MemberEmail: memberEmail,
	}
}

type messageItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	GSI1PK         string `dynamodbav:"GSI1PK"`
	GSI1SK         string `dynamodbav:"GSI1SK"`
	GSI2PK         string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK         string `dynamodbav:"GSI2SK,omitempty"`
	GSI3PK         string `dynamodbav:"GSI3PK,omitempty"`
	GSI3SK         string `dynamodbav:"GSI3SK,omitempty"`
	EntityType     string `dynamodbav:"EntityType"`
	MessageID      string `dynamodbav:"MessageID"`
	SenderEmail    string `dynamodbav:"SenderEmail"`
	RecipientEmail string `dynamodbav:"RecipientEmail,omitempty"`
	GroupID        string `dynamodbav:"GroupID,omitempty"`
	Content        string `dynamodbav:"Content"`
	IsGroupMessage bool   `dynamodbav:"IsGroupMessage"`
	IsRead         bool   `dynamodbav:"IsRead"`
	IsDeleted      bool   `dynamodbav:"IsDeleted"`
	Timestamp      string `dynamodbav:"Timestamp"`
	ReadAt         string `dynamodbav:"ReadAt,omitempty"`
	DeletedAt      string `dynamodbav:"DeletedAt,omitempty"`
}

func newMessageItem(m *entities.Message) messageItem {
	ts := formatTS(m.Timestamp())
	it := messageItem{
		PK:             messagePK(m.ID()),
		SK:             "MESSAGE",
		EntityType:     "MESSAGE",
		MessageID:      m.ID(),
		SenderEmail:    m.SenderEmail(),
		RecipientEmail: m.RecipientEmail(),
		GroupID:        m.GroupID(),
		Content:        m.Content(),
		IsGroupMessage: m.IsGroupMessage(),
		IsRead:         m.IsRead(),
		IsDeleted:      m.IsDeleted(),
		Timestamp:      ts,
	}

	if m.IsGroupMessage() {
		it.GSI1PK = "GROUPMSG#" + m.GroupID()
		it.GSI1SK = "TS#" + ts
	} else {
		it.GSI1PK = conversationKey(m.SenderEmail(), m.RecipientEmail())
		it.GSI1SK = "TS#" + ts
		it.GSI2PK = "RECIPIENT#" + m.RecipientEmail()
		it.GSI2SK = "TS#" + ts
		it.GSI3PK = "SENDER#" + m.SenderEmail()
		it.GSI3SK = "TS#" + ts
	}

	if readAt := m.ReadAt(); readAt != nil {
		it.ReadAt = formatTS(*readAt)
	}
	if deletedAt := m.DeletedAt(); deletedAt != nil {
		it.DeletedAt = formatTS(*deletedAt)
	}

	return it
}

func (it messageItem) toEntity() (*entities.Message, error) {
	timestamp, err := parseTS(it.Timestamp)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid message timestamp")
	}

	var readAt, deletedAt *time.Time
	if it.ReadAt != "" {
		t, err := parseTS(it.ReadAt)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "invalid message read timestamp")
		}
		readAt = &t
	}
	if it.DeletedAt != "" {
		t, err := parseTS(it.DeletedAt)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "invalid message deleted timestamp")
		}
		deletedAt = &t
	}

	return entities.ReconstructMessage(
		it.MessageID, it.SenderEmail, it.RecipientEmail, it.GroupID, it.Content,
		it.IsGroupMessage, it.IsRead, it.IsDeleted,
		timestamp, readAt, deletedAt,
	), nil
}
