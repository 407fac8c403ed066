package entities

import (
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// User is a registered account, keyed by email.
// The friend set is symmetric once established; that invariant is enforced
// by the friend service, which is the only code allowed to mutate it.
type User struct {
	email        string
	firstName    string
	lastName     string
	passwordHash string
	friends      map[string]struct{}
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with validation
func NewUser(email, firstName, lastName, passwordHash string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if firstName == "" {
		return nil, pkgerrors.NewValidationError("first name cannot be empty")
	}
	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: passwordHash,
		friends:      make(map[string]struct{}),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from repository data with preserved timestamps
func ReconstructUser(email, firstName, lastName, passwordHash string, friends []string, createdAt, updatedAt time.Time) *User {
	friendSet := make(map[string]struct{}, len(friends))
	for _, f := range friends {
		friendSet[f] = struct{}{}
	}

	return &User{
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: passwordHash,
		friends:      friendSet,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Email returns the user's unique email
func (u *User) Email() string {
	return u.email
}

// FirstName returns the user's first name
func (u *User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name
func (u *User) LastName() string {
	return u.lastName
}

// PasswordHash returns the stored credential, opaque to the rest of the core
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Friends returns a sorted copy of the friend set
func (u *User) Friends() []string {
	friends := make([]string, 0, len(u.friends))
	for f := range u.friends {
		friends = append(friends, f)
	}
	sort.Strings(friends)
	return friends
}

// HasFriend reports whether the given email is in the friend set
func (u *User) HasFriend(email string) bool {
	_, ok := u.friends[email]
	return ok
}

// AddFriend adds an email to the friend set. Adding an existing friend is a no-op.
func (u *User) AddFriend(email string) error {
	if email == "" {
		return pkgerrors.NewValidationError("friend email cannot be empty")
	}
	if email == u.email {
		return pkgerrors.NewValidationError("cannot add yourself as a friend")
	}

	if _, ok := u.friends[email]; ok {
		return nil
	}

	u.friends[email] = struct{}{}
	u.updatedAt = time.Now()
	return nil
}

// CreatedAt returns when the user registered
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}
