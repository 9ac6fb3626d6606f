package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/memorymatch/internal/metrics"
	"github.com/hitoshi/memorymatch/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	HTTPMetrics       middleware.HTTPMetrics // nilの場合は記録しない

	// ヘルスチェック・メトリクス公開
	HealthChecker   HealthChecker
	MetricsGatherer prometheus.Gatherer // nilの場合は/metricsを公開しない

	// サービス
	AuthService   AuthServiceInterface
	UserService   UserServiceInterface
	ResultService ResultServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → SecurityHeaders → CORS → Logging
//
// 認証が必要なルート（/auth/me、POST /api/results）にのみAuthMiddlewareを適用する。
// ゲーム結果の参照系は元の設計どおり公開（認証不要）とする。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default(), deps.HTTPMetrics))

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	resultHandler := NewResultHandler(deps.ResultService)

	// --- 認証不要のルート ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))

	if deps.MetricsGatherer != nil {
		r.Get("/metrics", metrics.Handler(deps.MetricsGatherer).ServeHTTP)
	}

	// 認証ルート
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// ユーザー管理（ゲストのget-or-createと参照）
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", userHandler.GetOrCreate)
		r.Get("/", userHandler.List)
		r.Get("/{username}", userHandler.Get)
	})

	// ゲーム結果の参照系
	r.Route("/api/results/user/{userID}", func(r chi.Router) {
		r.Get("/", resultHandler.ListByUser)
		r.Get("/stats", resultHandler.Stats)
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))

		r.Get("/auth/me", authHandler.Me)
		r.Post("/api/results", resultHandler.Save)
	})

	return r
}
