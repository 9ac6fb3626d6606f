// Package auth は認証のドメインロジックを提供する。
// パスワードのハッシュ化・照合と、署名付きアクセストークンの発行・検証を担う。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword は平文パスワードをbcryptでハッシュ化する。
// ソルトは呼び出しごとにランダム生成されるため、同じ入力でも出力は毎回異なる。
// 照合にはVerifyPasswordを使用すること。
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword は保存済みハッシュに埋め込まれたソルトを使って候補パスワードを照合する。
// ハッシュが不正な形式の場合もエラーにせず不一致（false）として扱う。
func VerifyPassword(storedHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
