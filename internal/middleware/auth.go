// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yamadatarousan/todoapp/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// authUserContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var authUserContextKey = contextKey("auth_user")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Managerの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (model.AuthUser, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。認証済みユーザーをリクエストコンテキストに注入する。
// ヘッダー欠落・形式不正・検証失敗はすべて同一の401レスポンスになる。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || tokenString == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 2. トークンを検証
			user, err := verifier.Verify(tokenString)
			if err != nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), authUserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthUserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func AuthUserFromContext(ctx context.Context) (model.AuthUser, error) {
	user, ok := ctx.Value(authUserContextKey).(model.AuthUser)
	if !ok || user.ID == 0 {
		return model.AuthUser{}, fmt.Errorf("auth user not found in context")
	}
	return user, nil
}

// ContextWithAuthUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithAuthUser(ctx context.Context, user model.AuthUser) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}
