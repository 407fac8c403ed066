package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlenesK/howudoin/application/ports"
	"github.com/AlenesK/howudoin/domain/core/entities"
	"github.com/AlenesK/howudoin/pkg/auth"
	pkgerrors "github.com/AlenesK/howudoin/pkg/errors"
)

// AuthService handles user registration and login
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.JWTGenerator
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users ports.UserRepository, tokens *auth.JWTGenerator, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user account and returns the user with a signed access
// token. Registering an email that already exists fails with a Conflict error.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*entities.User, string, error) {
	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", pkgerrors.NewConflictError("email already registered")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "failed to hash password")
	}

	user, err := entities.NewUser(email, firstName, lastName, passwordHash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.Email(), user.FirstName(), user.LastName())
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "failed to generate token")
	}

	s.logger.Info("User registered", zap.String("email", email))

	return user, token, nil
}

// Login verifies credentials and returns the user with a signed access token.
// Every credential failure returns the same Unauthorized error so the
// response does not reveal whether the email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, "", pkgerrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	match, err := auth.ComparePassword(password, user.PasswordHash())
	if err != nil || !match {
		return nil, "", pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.Email(), user.FirstName(), user.LastName())
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "failed to generate token")
	}

	s.logger.Info("User logged in", zap.String("email", email))

	return user, token, nil
}
