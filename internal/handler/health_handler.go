package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// healthResponse はヘルスチェックのAPIレスポンス。
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHealthHandler はヘルスチェックのHTTPハンドラーを返す。
// DBへの疎通確認が取れた場合のみhealthyを返す。
// GET /health
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := checker.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "unhealthy",
				Message: "database is unreachable",
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Message: "backend server is running",
		})
	}
}
