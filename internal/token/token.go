// Package token は署名付きベアラートークンの発行と検証を提供する。
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yamadatarousan/todoapp/internal/model"
)

// ErrInvalidToken はトークン検証の失敗を表す。
// 形式不正・署名不一致・期限切れ・クレーム欠落のいずれであっても
// この1種類に集約し、どの検証が失敗したかを外部に漏らさない。
var ErrInvalidToken = errors.New("invalid token")

// Claims はトークンに埋め込むクレームを表す。
// ユーザーIDは標準のsubクレームに文字列として格納する。
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Manager はHS256署名のJWTを発行・検証する。
// 署名シークレットは起動時に1回注入され、以後変更されない。
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager はManagerを生成する。
// ttlは発行するトークンの有効期間（既定は7日、configで指定）。
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue は認証済みユーザーのベアラートークンを発行する。
// 発行時刻と有効期限を含む自己完結型のトークンで、サーバー側には保存しない。
func (m *Manager) Issue(user model.AuthUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: user.Email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify はトークンを検証し、埋め込まれたユーザー識別情報を返す。
// 署名の検証・有効期限の確認（クロックスキュー許容なし）・クレームの存在確認を行い、
// いずれかが失敗した場合はErrInvalidTokenを返す。
func (m *Manager) Verify(tokenString string) (model.AuthUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return model.AuthUser{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.AuthUser{}, ErrInvalidToken
	}
	if claims.Email == "" || claims.ExpiresAt == nil {
		return model.AuthUser{}, ErrInvalidToken
	}

	return model.AuthUser{ID: userID, Email: claims.Email}, nil
}
