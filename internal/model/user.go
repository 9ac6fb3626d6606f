// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// UsernameとEmailはそれぞれシステム全体で一意。
// PasswordHashは平文ではなくbcryptハッシュのみを保持する。
// ゲストユーザー（ユーザー名のみで作成）はEmailとPasswordHashが空になる。
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time // 未ログインの場合はnil
}

// GameResult は1回のプレイセッションの結果を表す。
// 送信時に作成されて以降は不変。削除は所有ユーザーの削除に伴うCASCADEのみ。
type GameResult struct {
	ID         int64
	UserID     int64
	Score      int // 非負
	Moves      int // 非負
	TimeTaken  int // 秒単位、非負
	Difficulty string
	GridSize   string
	Completed  bool
	PlayedAt   time.Time
}

// ゲーム結果のデフォルト値。
const (
	DefaultDifficulty = "medium"
	DefaultGridSize   = "4x4"
)

// Stats はユーザーのゲーム結果を集計したサマリー統計を表す。
// 平均値は小数第2位に丸めた値を保持する。
type Stats struct {
	TotalGames      int     `json:"total_games"`
	AverageScore    float64 `json:"average_score"`
	AverageMoves    float64 `json:"average_moves"`
	AverageTime     float64 `json:"average_time"`
	BestScore       int     `json:"best_score"`
	TotalTimePlayed int     `json:"total_time_played"`
}
