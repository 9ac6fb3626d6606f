package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/memorymatch/internal/model"
)

// PostgresGameResultRepo はPostgreSQLを使用したゲーム結果リポジトリ。
type PostgresGameResultRepo struct {
	db *sql.DB
}

// NewPostgresGameResultRepo はPostgresGameResultRepoを生成する。
func NewPostgresGameResultRepo(db *sql.DB) *PostgresGameResultRepo {
	return &PostgresGameResultRepo{db: db}
}

// Create はゲーム結果を作成する。
func (r *PostgresGameResultRepo) Create(ctx context.Context, result *model.GameResult) (*model.GameResult, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO game_results (user_id, score, moves, time_taken, difficulty, grid_size, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, played_at`,
		result.UserID, result.Score, result.Moves, result.TimeTaken,
		result.Difficulty, result.GridSize, result.Completed,
	).Scan(&result.ID, &result.PlayedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert game result: %w", err)
	}

	return result, nil
}

// ListByUser は指定ユーザーのゲーム結果をplayed_atの降順で返す。
// filter.Difficultyが空でない場合は難易度で絞り込み、
// filter.Limitが正の場合は取得件数を制限する。
func (r *PostgresGameResultRepo) ListByUser(ctx context.Context, userID int64, filter GameResultFilter) ([]model.GameResult, error) {
	query := `SELECT id, user_id, score, moves, time_taken, difficulty, grid_size, completed, played_at
		 FROM game_results WHERE user_id = $1`
	args := []any{userID}

	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}

	query += " ORDER BY played_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}
	defer rows.Close()

	var results []model.GameResult
	for rows.Next() {
		var res model.GameResult
		if err := rows.Scan(&res.ID, &res.UserID, &res.Score, &res.Moves, &res.TimeTaken,
			&res.Difficulty, &res.GridSize, &res.Completed, &res.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game results: %w", err)
	}

	return results, nil
}

// compile-time interface check
var _ GameResultRepository = (*PostgresGameResultRepo)(nil)
