package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memorymatch/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetOrCreate はユーザー名でユーザーを検索し、存在しなければ作成する。
	GetOrCreate(ctx context.Context, username string) (*model.User, bool, error)
	// GetByUsername はユーザー名でユーザーを取得する。
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// getOrCreateUserRequest はget-or-createリクエストのボディ。
type getOrCreateUserRequest struct {
	Username string `json:"username"`
}

// GetOrCreate はユーザー名によるget-or-createを処理する。
// 既存ユーザーの場合は200、新規作成の場合は201を返す。
// POST /api/users
func (h *UserHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req getOrCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestError(w)
		return
	}

	user, created, err := h.service.GetOrCreate(r.Context(), req.Username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toUserResponse(user))
}

// Get はユーザー名でユーザーを取得する。
// GET /api/users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// List は全ユーザーの一覧を返す。
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]userResponse, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user)
	}
	writeJSON(w, http.StatusOK, responses)
}
