package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memorymatch/internal/model"
)

// --- モック ---

type mockUserService struct {
	getOrCreateFunc   func(ctx context.Context, username string) (*model.User, bool, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	listFunc          func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserService) GetOrCreate(ctx context.Context, username string) (*model.User, bool, error) {
	return m.getOrCreateFunc(ctx, username)
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.getByUsernameFunc(ctx, username)
}

func (m *mockUserService) List(ctx context.Context) ([]*model.User, error) {
	return m.listFunc(ctx)
}

var _ UserServiceInterface = (*mockUserService)(nil)

// userRouter はURLパラメータを解決するため、ハンドラーをルーターに載せて返す。
func userRouter(h *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/users", h.GetOrCreate)
	r.Get("/api/users", h.List)
	r.Get("/api/users/{username}", h.Get)
	return r
}

func TestUserHandler_GetOrCreate_Existing(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getOrCreateFunc: func(_ context.Context, username string) (*model.User, bool, error) {
			return &model.User{ID: 3, Username: username}, false, nil
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// 既存ユーザーは200
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestUserHandler_GetOrCreate_New(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getOrCreateFunc: func(_ context.Context, username string) (*model.User, bool, error) {
			return &model.User{ID: 7, Username: username}, true, nil
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"bob"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// 新規作成は201
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var body userResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Username != "bob" {
		t.Errorf("username = %s, want bob", body.Username)
	}
}

func TestUserHandler_GetOrCreate_EmptyUsername(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getOrCreateFunc: func(_ context.Context, _ string) (*model.User, bool, error) {
			return nil, false, model.NewValidationError("ユーザー名は必須です")
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUserHandler_Get(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getByUsernameFunc: func(_ context.Context, username string) (*model.User, error) {
			if username != "alice" {
				t.Errorf("username = %s, want alice", username)
			}
			return &model.User{ID: 3, Username: "alice"}, nil
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getByUsernameFunc: func(_ context.Context, _ string) (*model.User, error) {
			return nil, model.NewUserNotFoundError()
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/users/nobody", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeErrorResponse(t, rec); body.Code != model.ErrCodeUserNotFound {
		t.Errorf("code = %s, want %s", body.Code, model.ErrCodeUserNotFound)
	}
}

func TestUserHandler_List(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		listFunc: func(_ context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: 1, Username: "alice"},
				{ID: 2, Username: "bob"},
			}, nil
		},
	}
	router := userRouter(NewUserHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body []userResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body) != 2 {
		t.Errorf("len(users) = %d, want 2", len(body))
	}
}
