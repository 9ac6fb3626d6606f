// Package result はゲーム結果のドメインロジックを提供する。
package result

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/memorymatch/internal/model"
	"github.com/hitoshi/memorymatch/internal/repository"
	"github.com/hitoshi/memorymatch/internal/stats"
)

// Metrics はゲーム結果サービスが記録するメトリクスのインターフェース。
type Metrics interface {
	RecordGameSaved()
}

// SaveInput はゲーム結果保存の入力。
// DifficultyとGridSizeが空の場合はデフォルト値を適用する。
// Completedがnilの場合はtrueとして扱う。
type SaveInput struct {
	Score      int
	Moves      int
	TimeTaken  int
	Difficulty string
	GridSize   string
	Completed  *bool
}

// Service はゲーム結果のサービス層。
// 結果の保存・一覧取得・統計の集計を提供する。
type Service struct {
	resultRepo repository.GameResultRepository
	userRepo   repository.UserRepository
	metrics    Metrics // nilの場合は記録しない
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する。
func NewService(resultRepo repository.GameResultRepository, userRepo repository.UserRepository, metrics Metrics) *Service {
	return &Service{
		resultRepo: resultRepo,
		userRepo:   userRepo,
		metrics:    metrics,
	}
}

// Save は指定ユーザーのゲーム結果を保存する。
// score/moves/time_takenは非負であること。保存後の結果は不変。
func (s *Service) Save(ctx context.Context, userID int64, input SaveInput) (*model.GameResult, error) {
	if input.Score < 0 || input.Moves < 0 || input.TimeTaken < 0 {
		return nil, model.NewValidationError("score、moves、time_takenには0以上の値を指定してください")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}
	gridSize := input.GridSize
	if gridSize == "" {
		gridSize = model.DefaultGridSize
	}
	completed := true
	if input.Completed != nil {
		completed = *input.Completed
	}

	result, err := s.resultRepo.Create(ctx, &model.GameResult{
		UserID:     userID,
		Score:      input.Score,
		Moves:      input.Moves,
		TimeTaken:  input.TimeTaken,
		Difficulty: difficulty,
		GridSize:   gridSize,
		Completed:  completed,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("game result saved",
		slog.Int64("user_id", userID),
		slog.Int64("result_id", result.ID),
		slog.Int("score", result.Score),
	)
	if s.metrics != nil {
		s.metrics.RecordGameSaved()
	}

	return result, nil
}

// ListByUser は指定ユーザーのゲーム結果を最新順で返す。
// difficultyが空でない場合は難易度で絞り込み、limitが正の場合は件数を制限する。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) ListByUser(ctx context.Context, userID int64, difficulty string, limit int) (*model.User, []model.GameResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, nil, model.NewUserNotFoundError()
	}

	results, err := s.resultRepo.ListByUser(ctx, userID, repository.GameResultFilter{
		Difficulty: difficulty,
		Limit:      limit,
	})
	if err != nil {
		return nil, nil, err
	}

	return user, results, nil
}

// UserStats は指定ユーザーの全ゲーム結果からサマリー統計を集計して返す。
// ゲーム結果が1件もない場合は全フィールドゼロの統計を返す。
func (s *Service) UserStats(ctx context.Context, userID int64) (*model.User, model.Stats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.Stats{}, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.Stats{}, model.NewUserNotFoundError()
	}

	results, err := s.resultRepo.ListByUser(ctx, userID, repository.GameResultFilter{})
	if err != nil {
		return nil, model.Stats{}, err
	}

	return user, stats.Compute(results), nil
}
