package entities

import (
	"sort"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// Group is a named set of member users.
// Invariant: the creator is a member at all times after creation.
type Group struct {
	id           string
	name         string
	creatorEmail string
	members      map[string]struct{}
	createdAt    time.Time
	updatedAt    time.Time
}

// NewGroup creates a group whose member set is the union of memberEmails and
// the creator; the creator is always included even if omitted from the input.
func NewGroup(creatorEmail, name string, memberEmails []string) (*Group, error) {
	if creatorEmail == "" {
		return nil, pkgerrors.NewValidationError("creator email cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("group name cannot be empty")
	}

	members := make(map[string]struct{}, len(memberEmails)+1)
	for _, email := range memberEmails {
		if email == "" {
			return nil, pkgerrors.NewValidationError("member email cannot be empty")
		}
		members[email] = struct{}{}
	}
	members[creatorEmail] = struct{}{}

	now := time.Now()
	return &Group{
		id:           uuid.New().String(),
		name:         name,
		creatorEmail: creatorEmail,
		members:      members,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructGroup rebuilds a group from repository data
func ReconstructGroup(id, name, creatorEmail string, members []string, createdAt, updatedAt time.Time) *Group {
	memberSet := make(map[string]struct{}, len(members))
	for _, m := range members {
		memberSet[m] = struct{}{}
	}

	return &Group{
		id:           id,
		name:         name,
		creatorEmail: creatorEmail,
		members:      memberSet,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the group's unique identifier
func (g *Group) ID() string {
	return g.id
}

// Name returns the group's display name
func (g *Group) Name() string {
	return g.name
}

// CreatorEmail returns the creating user's email
func (g *Group) CreatorEmail() string {
	return g.creatorEmail
}

// Members returns a sorted copy of the member set
func (g *Group) Members() []string {
	members := make([]string, 0, len(g.members))
	for m := range g.members {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

// IsMember reports whether the given email is in the member set
func (g *Group) IsMember(email string) bool {
	_, ok := g.members[email]
	return ok
}

// AddMember adds an email to the member set. Adding an existing member is a no-op.
func (g *Group) AddMember(email string) error {
	if email == "" {
		return pkgerrors.NewValidationError("member email cannot be empty")
	}

	if _, ok := g.members[email]; ok {
		return nil
	}

	g.members[email] = struct{}{}
	g.updatedAt = time.Now()
	return nil
}

// CreatedAt returns when the group was created
func (g *Group) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the group was last updated
func (g *Group) UpdatedAt() time.Time {
	return g.updatedAt
}
