// Package app holds the application services and business logic.
package app

import (
	"context"

	"healthhub/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the user carried by ctx, or nil.
func UserFrom(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

func requireUser(ctx context.Context) (*domain.User, error) {
	u := UserFrom(ctx)
	if u == nil {
		return nil, domain.ErrNoUser
	}
	return u, nil
}
