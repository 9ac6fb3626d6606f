package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/memorymatch/internal/model"
	"github.com/hitoshi/memorymatch/internal/repository"
)

// --- モック ---

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user *model.User) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	listAllFunc        func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return m.createFunc(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not implemented")
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	return m.listAllFunc(ctx)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	panic("not implemented")
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id int64) error {
	panic("not implemented")
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func TestService_GetOrCreate_Existing(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		findByUsernameFunc: func(_ context.Context, username string) (*model.User, error) {
			return &model.User{ID: 3, Username: username}, nil
		},
	}
	svc := NewService(repo)

	user, created, err := svc.GetOrCreate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if created {
		t.Error("created should be false for an existing user")
	}
	if user.ID != 3 {
		t.Errorf("user.ID = %d, want 3", user.ID)
	}
}

func TestService_GetOrCreate_New(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		findByUsernameFunc: func(_ context.Context, _ string) (*model.User, error) {
			return nil, nil
		},
		createFunc: func(_ context.Context, user *model.User) (*model.User, error) {
			// ゲストユーザーはメールアドレスとパスワードを持たない
			if user.Email != "" {
				t.Errorf("guest user should have no email, got %q", user.Email)
			}
			if user.PasswordHash != "" {
				t.Errorf("guest user should have no password hash, got %q", user.PasswordHash)
			}
			created := *user
			created.ID = 7
			return &created, nil
		},
	}
	svc := NewService(repo)

	user, created, err := svc.GetOrCreate(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if !created {
		t.Error("created should be true for a new user")
	}
	if user.ID != 7 {
		t.Errorf("user.ID = %d, want 7", user.ID)
	}
	if user.Username != "bob" {
		t.Errorf("username = %s, want bob", user.Username)
	}
}

func TestService_GetOrCreate_EmptyUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockUserRepo{})

	_, _, err := svc.GetOrCreate(context.Background(), "")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %s, want %s", apiErr.Code, model.ErrCodeValidationFailed)
	}
}

func TestService_GetByUsername(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		findByUsernameFunc: func(_ context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return &model.User{ID: 3, Username: "alice"}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo)

	user, err := svc.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if user.ID != 3 {
		t.Errorf("user.ID = %d, want 3", user.ID)
	}

	_, err = svc.GetByUsername(context.Background(), "nobody")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeUserNotFound {
		t.Errorf("code = %s, want %s", apiErr.Code, model.ErrCodeUserNotFound)
	}
}

func TestService_List(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		listAllFunc: func(_ context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: 1, Username: "alice"},
				{ID: 2, Username: "bob"},
			}, nil
		},
	}
	svc := NewService(repo)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("len(users) = %d, want 2", len(users))
	}
}
