package app

import (
	"context"
	"errors"
	"log/slog"

	"healthhub/internal/domain"
)

// IdentityService resolves the user a request acts for. It performs no
// authentication: a trusted proxy header wins, then a configured default user.
type IdentityService struct {
	users       domain.UserRepository
	defaultUser string
}

// NewIdentityService creates an IdentityService backed by the given repository.
func NewIdentityService(users domain.UserRepository, defaultUser string) *IdentityService {
	return &IdentityService{users: users, defaultUser: defaultUser}
}

// Resolve returns the user for remoteUser, falling back to the default user.
// Unknown users are created on first sight. A nil user with a nil error means
// the request is anonymous.
func (s *IdentityService) Resolve(ctx context.Context, remoteUser string) (*domain.User, error) {
	username := remoteUser
	if username == "" {
		username = s.defaultUser
	}
	if username == "" {
		return nil, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.users.Create(ctx, username)
	if err != nil {
		// Lost a race with a concurrent request creating the same user.
		user, err = s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
	}
	slog.Info("user provisioned", "user_id", user.ID, "username", user.Username)
	return user, nil
}
