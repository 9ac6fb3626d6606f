package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/hitoshi/memorymatch/internal/model"
	"github.com/hitoshi/memorymatch/internal/repository"
)

// emailPattern はメールアドレスの形式チェックに使用する。
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 6

// Metrics は認証サービスが記録するメトリクスのインターフェース。
type Metrics interface {
	RecordRegistration()
	RecordLogin()
}

// Service は認証のサービス層。
// ユーザー登録・ログイン・現在ユーザーの取得を提供する。
type Service struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
	metrics  Metrics // nilの場合は記録しない
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する。
func NewService(userRepo repository.UserRepository, issuer *TokenIssuer, metrics Metrics) *Service {
	return &Service{
		userRepo: userRepo,
		issuer:   issuer,
		metrics:  metrics,
	}
}

// Register は新規ユーザーを登録し、発行したアクセストークンとともに返す。
// メールアドレス・ユーザー名の重複はユーザー名が異なっていても常に競合エラーになる。
// 登録成功時はlast_loginを登録時刻で初期化する。
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if username == "" {
		return nil, "", model.NewValidationError("ユーザー名は必須です")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", model.NewValidationError("メールアドレスの形式が正しくありません")
	}
	if len(password) < minPasswordLength {
		return nil, "", model.NewValidationError(fmt.Sprintf("パスワードは%d文字以上で指定してください", minPasswordLength))
	}

	// 登録済みチェック（最終的な整合性はDBの一意制約で保証する）
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewEmailTakenError()
	}

	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewUsernameTakenError()
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user, err := s.userRepo.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastLogin:    &now,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}

	return user, token, nil
}

// Login はメールアドレスとパスワードでユーザーを認証し、アクセストークンを発行する。
// メールアドレス未登録とパスワード不一致はどちらも同一のINVALID_CREDENTIALSを返す。
// 認証成功時はlast_loginを更新する。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", model.NewValidationError("メールアドレスとパスワードは必須です")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, "", fmt.Errorf("failed to update last_login: %w", err)
	}
	now := time.Now()
	user.LastLogin = &now

	token, err := s.issuer.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
	)
	if s.metrics != nil {
		s.metrics.RecordLogin()
	}

	return user, token, nil
}

// CurrentUser は認証済みユーザーIDからユーザー情報を取得する。
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}
