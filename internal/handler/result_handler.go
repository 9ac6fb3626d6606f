package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memorymatch/internal/middleware"
	"github.com/hitoshi/memorymatch/internal/model"
	"github.com/hitoshi/memorymatch/internal/result"
)

// ResultServiceInterface はゲーム結果ハンドラーが必要とするサービスインターフェース。
type ResultServiceInterface interface {
	// Save は指定ユーザーのゲーム結果を保存する。
	Save(ctx context.Context, userID int64, input result.SaveInput) (*model.GameResult, error)
	// ListByUser は指定ユーザーのゲーム結果を最新順で返す。
	ListByUser(ctx context.Context, userID int64, difficulty string, limit int) (*model.User, []model.GameResult, error)
	// UserStats は指定ユーザーのサマリー統計を返す。
	UserStats(ctx context.Context, userID int64) (*model.User, model.Stats, error)
}

// ResultHandler はゲーム結果のHTTPハンドラー。
type ResultHandler struct {
	service ResultServiceInterface
}

// NewResultHandler はResultHandlerを生成する。
func NewResultHandler(service ResultServiceInterface) *ResultHandler {
	return &ResultHandler{service: service}
}

// saveResultRequest はゲーム結果保存リクエストのボディ。
// 所有ユーザーはアクセストークンから決定するため、ボディには含めない。
type saveResultRequest struct {
	Score      int    `json:"score"`
	Moves      int    `json:"moves"`
	TimeTaken  int    `json:"time_taken"`
	Difficulty string `json:"difficulty"`
	GridSize   string `json:"grid_size"`
	Completed  *bool  `json:"completed"`
}

// resultResponse はゲーム結果のAPIレスポンス。
type resultResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Score      int       `json:"score"`
	Moves      int       `json:"moves"`
	TimeTaken  int       `json:"time_taken"`
	Difficulty string    `json:"difficulty"`
	GridSize   string    `json:"grid_size"`
	Completed  bool      `json:"completed"`
	PlayedAt   time.Time `json:"played_at"`
}

// resultListResponse はユーザーのゲーム結果一覧のAPIレスポンス。
type resultListResponse struct {
	User       userResponse     `json:"user"`
	Results    []resultResponse `json:"results"`
	TotalGames int              `json:"total_games"`
}

// statsResponse はユーザーのサマリー統計のAPIレスポンス。
type statsResponse struct {
	User  userResponse `json:"user"`
	Stats model.Stats  `json:"stats"`
}

// Save はゲーム結果の保存を処理する。所有ユーザーはトークンから決定する。
// POST /api/results
func (h *ResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestError(w)
		return
	}

	saved, err := h.service.Save(r.Context(), userID, result.SaveInput{
		Score:      req.Score,
		Moves:      req.Moves,
		TimeTaken:  req.TimeTaken,
		Difficulty: req.Difficulty,
		GridSize:   req.GridSize,
		Completed:  req.Completed,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResultResponse(saved))
}

// ListByUser は指定ユーザーのゲーム結果一覧を返す。
// クエリパラメータ: difficulty（難易度で絞り込み）、limit（取得件数の上限）。
// GET /api/results/user/{userID}
func (h *ResultHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDParam(w, r)
	if !ok {
		return
	}

	difficulty := r.URL.Query().Get("difficulty")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("limitには0以上の整数を指定してください"))
			return
		}
		limit = parsed
	}

	user, results, err := h.service.ListByUser(r.Context(), userID, difficulty, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]resultResponse, len(results))
	for i, res := range results {
		responses[i] = toResultResponse(&res)
	}
	writeJSON(w, http.StatusOK, resultListResponse{
		User:       toUserResponse(user),
		Results:    responses,
		TotalGames: len(responses),
	})
}

// Stats は指定ユーザーのサマリー統計を返す。
// ゲーム結果が1件もない場合は全フィールドゼロの統計を返す。
// GET /api/results/user/{userID}/stats
func (h *ResultHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserIDParam(w, r)
	if !ok {
		return
	}

	user, stats, err := h.service.UserStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		User:  toUserResponse(user),
		Stats: stats,
	})
}

// parseUserIDParam はURLパラメータからユーザーIDを取り出す。
// 不正な場合はエラーレスポンスを書き込みfalseを返す。
func parseUserIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("ユーザーIDには正の整数を指定してください"))
		return 0, false
	}
	return userID, true
}

// toResultResponse はドメインのGameResultをAPIレスポンス型に変換する。
func toResultResponse(res *model.GameResult) resultResponse {
	return resultResponse{
		ID:         res.ID,
		UserID:     res.UserID,
		Score:      res.Score,
		Moves:      res.Moves,
		TimeTaken:  res.TimeTaken,
		Difficulty: res.Difficulty,
		GridSize:   res.GridSize,
		Completed:  res.Completed,
		PlayedAt:   res.PlayedAt,
	}
}
