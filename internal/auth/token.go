package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証のエラー種別。呼び出し側はerrors.Isで判別する。
var (
	// ErrTokenExpired は有効期限切れのトークンを表す。
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid は署名不正またはペイロード不正のトークンを表す。
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims はJWTに格納するクレーム。標準クレームとユーザーIDを持つ。
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenIssuer は署名付きアクセストークンの発行と検証を行う。
// 秘密鍵と有効期間は起動時の設定から注入され、以降は読み取り専用。
// 発行済みトークンはサーバー側に保存しない（失効リストなし）。
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

// NewTokenIssuer はTokenIssuerを生成する。
// validityには発行時刻からの有効期間（デフォルト7日）を指定する。
func NewTokenIssuer(secret string, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Generate は指定ユーザーIDのアクセストークンを発行する。
// HS256で署名し、発行時刻と有効期限（発行時刻+有効期間）をクレームに含める。
func (i *TokenIssuer) Generate(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})

	return token.SignedString(i.secret)
}

// Verify はトークンを検証し、格納されたユーザーIDを返す。
// 有効期限切れの場合はErrTokenExpired、署名不正・ペイロード不正の場合は
// ErrTokenInvalidを返す。副作用はなく、(トークン, 秘密鍵, 現在時刻)のみに依存する。
func (i *TokenIssuer) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// HS256以外の署名アルゴリズムは受け付けない
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}

	return claims.UserID, nil
}
