// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/memorymatch/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、IDと作成日時を採番済みのユーザーを返す。
	// username/emailの一意制約違反はmodel.APIError（EMAIL_TAKEN / USERNAME_TAKEN）として返す。
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// ListAll は全ユーザーを作成日時の昇順で返す。
	ListAll(ctx context.Context) ([]*model.User, error)

	// UpdateLastLogin は最終ログイン日時を更新する。
	UpdateLastLogin(ctx context.Context, id int64) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 所有するgame_resultsはCASCADE削除される。
	DeleteByID(ctx context.Context, id int64) error
}

// GameResultFilter はゲーム結果一覧取得の絞り込み条件。
type GameResultFilter struct {
	// Difficulty が空でない場合、その難易度のみに絞り込む。
	Difficulty string
	// Limit が正の場合、取得件数を制限する。
	Limit int
}

// GameResultRepository はゲーム結果データの永続化インターフェース。
// ゲーム結果は作成後に更新されない。
type GameResultRepository interface {
	// Create はゲーム結果を作成し、IDとプレイ日時を採番済みの結果を返す。
	Create(ctx context.Context, result *model.GameResult) (*model.GameResult, error)

	// ListByUser は指定ユーザーのゲーム結果をplayed_atの降順（最新が先頭）で返す。
	ListByUser(ctx context.Context, userID int64, filter GameResultFilter) ([]model.GameResult, error)
}
