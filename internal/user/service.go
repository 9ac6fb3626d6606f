// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/memorymatch/internal/model"
	"github.com/hitoshi/memorymatch/internal/repository"
)

// Service はユーザー管理のサービス層。
// ユーザーの参照と、ユーザー名のみによるget-or-create（ゲストフロー）を提供する。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// GetOrCreate はユーザー名でユーザーを検索し、存在しなければ作成する。
// 戻り値のcreatedは新規作成された場合にtrueになる。
// この経路で作成されたゲストユーザーはメールアドレスとパスワードを持たず、
// ログインには使用できない。
func (s *Service) GetOrCreate(ctx context.Context, username string) (*model.User, bool, error) {
	if username == "" {
		return nil, false, model.NewValidationError("ユーザー名は必須です")
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	user, err := s.userRepo.Create(ctx, &model.User{Username: username})
	if err != nil {
		return nil, false, err
	}

	slog.Info("guest user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, true, nil
}

// GetByUsername はユーザー名でユーザーを取得する。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
