// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashとPasswordSaltはhex文字列として保持し、平文パスワードは保持しない。
type User struct {
	ID           int64
	Email        string // 正規化済み（trim + 小文字化）メールアドレス。全体で一意。
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthUser は認証済みユーザーの識別情報を表す。
// トークンのクレームおよびリクエストコンテキストに格納される最小限の情報。
type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
