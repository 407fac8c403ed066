package auth

import (
	"context"

	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// UserContext carries the authenticated caller's identity through a request
type UserContext struct {
	Email     string
	FirstName string
	LastName  string
}

type contextKey string

const userContextKey contextKey = "auth_user"

// SetUserInContext stores the authenticated user in the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}
