// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/yamadatarousan/todoapp/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail は正規化済みメールアドレスの完全一致でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成し、ストレージが採番したIDを設定して返す。
	// emailの一意制約違反の場合はmodel.ErrDuplicateEmailを返す。
	// 同時サインアップの競合はこの制約で防ぐ（事前チェックだけでは不十分）。
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// TodoRepository はTodoデータの永続化インターフェース。
// 全ての参照・更新・削除は (id, user_id) の複合条件を単一のSQL述語として
// 評価する。idのみで取得してから所有者を確認する実装は許可しない。
type TodoRepository interface {
	// ListByUserID は指定ユーザーが所有するTodoを作成順（id昇順）で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Todo, error)

	// Create はTodoを作成し、ストレージが採番したIDを設定して返す。
	// UserIDは呼び出し側（サービス層）が認証済みユーザーから設定する。
	Create(ctx context.Context, todo *model.Todo) (*model.Todo, error)

	// Update は (id, user_id) に一致するTodoを部分更新する。
	// nilフィールドは変更せず、既存の値を維持する。
	// statusが指定された場合、doneへの遷移でdone_atに現在時刻を記録し、
	// todoへの遷移でdone_atをクリアする。
	// 一致する行がない場合はnilを返す（不存在と他者所有を区別しない）。
	Update(ctx context.Context, id, userID int64, title *string, status *model.TodoStatus) (*model.Todo, error)

	// Delete は (id, user_id) に一致するTodoを削除する。
	// 削除した場合はtrue、一致する行がない場合はfalseを返す。
	Delete(ctx context.Context, id, userID int64) (bool, error)
}
