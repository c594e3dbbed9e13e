// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, todo, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeEmailExists        = "EMAIL_EXISTS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeTodoNotFound       = "TODO_NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrDuplicateEmail はストレージの一意制約違反を表すセンチネルエラー。
// リポジトリ層がPostgreSQLのunique_violation(23505)を変換して返す。
var ErrDuplicateEmail = errors.New("email already registered")

// NewInvalidRequestError はリクエスト形式違反エラーを生成する。
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  message,
		Category: "validation",
		Action:   "リクエスト内容を確認してください。",
	}
}

// NewEmailExistsError はメールアドレス重複エラーを生成する。
// 事前チェックと一意制約違反のどちらの経路でも同じエラーになる。
func NewEmailExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailExists,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "ログインするか、別のメールアドレスで登録してください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// ユーザー不存在とパスワード不一致のどちらでも同一のレスポンスになり、
// アカウントの存在有無を外部に漏らさない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
// トークンの欠落・改ざん・期限切れのいずれでも同じレスポンスになる。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewTodoNotFoundError はTodo未検出エラーを生成する。
// 存在しない場合と他ユーザーの所有物の場合で同一のレスポンスになり、
// 他人のリソースの存在を外部に漏らさない。
func NewTodoNotFoundError(todoID int64) *APIError {
	return &APIError{
		Code:     ErrCodeTodoNotFound,
		Message:  fmt.Sprintf("指定されたTodoが見つかりません: %d", todoID),
		Category: "todo",
		Action:   "TodoのIDを確認してください。",
	}
}

// NewInternalError は内部エラーを生成する。内部原因は含めない。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
