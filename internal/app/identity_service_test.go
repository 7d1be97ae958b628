package app_test

import (
	"context"
	"errors"
	"testing"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

type mockUserRepo struct {
	getFn    func(ctx context.Context, username string) (*domain.User, error)
	createFn func(ctx context.Context, username string) (*domain.User, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, username string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username)
	}
	return &domain.User{ID: 1, Username: username}, nil
}

func TestResolve_ExistingUser(t *testing.T) {
	repo := &mockUserRepo{
		getFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 5, Username: username}, nil
		},
		createFn: func(_ context.Context, _ string) (*domain.User, error) {
			t.Fatal("create should not be called")
			return nil, nil
		},
	}
	svc := app.NewIdentityService(repo, "demo")
	u, err := svc.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 5 || u.Username != "alice" {
		t.Errorf("user = %+v", u)
	}
}

func TestResolve_DefaultUserProvisioned(t *testing.T) {
	var created string
	repo := &mockUserRepo{
		createFn: func(_ context.Context, username string) (*domain.User, error) {
			created = username
			return &domain.User{ID: 9, Username: username}, nil
		},
	}
	svc := app.NewIdentityService(repo, "demo")
	u, err := svc.Resolve(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if created != "demo" || u.ID != 9 {
		t.Errorf("created %q, user %+v", created, u)
	}
}

func TestResolve_Anonymous(t *testing.T) {
	svc := app.NewIdentityService(&mockUserRepo{}, "")
	u, err := svc.Resolve(context.Background(), "")
	if err != nil || u != nil {
		t.Errorf("expected anonymous, got %+v, %v", u, err)
	}
}

func TestResolve_CreateRace(t *testing.T) {
	calls := 0
	repo := &mockUserRepo{
		getFn: func(_ context.Context, username string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
		createFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("duplicate key")
		},
	}
	svc := app.NewIdentityService(repo, "")
	u, err := svc.Resolve(context.Background(), "bob")
	if err != nil || u.ID != 2 {
		t.Errorf("user = %+v, err = %v", u, err)
	}
}

func TestResolve_LookupError(t *testing.T) {
	boom := errors.New("db down")
	repo := &mockUserRepo{
		getFn: func(_ context.Context, _ string) (*domain.User, error) { return nil, boom },
	}
	svc := app.NewIdentityService(repo, "demo")
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, boom) {
		t.Errorf("expected lookup error, got %v", err)
	}
}

func TestUserFromContext(t *testing.T) {
	if app.UserFrom(context.Background()) != nil {
		t.Error("expected nil user")
	}
	u := &domain.User{ID: 3}
	if got := app.UserFrom(app.WithUser(context.Background(), u)); got != u {
		t.Errorf("got %+v", got)
	}
}
