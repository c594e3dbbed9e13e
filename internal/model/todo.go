// Package model はドメインモデルを定義する。
package model

import "time"

// TodoStatus はTodoの状態を表す。
type TodoStatus string

const (
	// TodoStatusTodo は未完了状態を表す。
	TodoStatusTodo TodoStatus = "todo"
	// TodoStatusDone は完了状態を表す。
	TodoStatusDone TodoStatus = "done"
)

// IsValid はステータスが定義済みの値かどうかを返す。
func (s TodoStatus) IsValid() bool {
	return s == TodoStatusTodo || s == TodoStatusDone
}

// Todo はユーザーが所有するタスクを表す。
// UserIDは作成時に認証済みユーザーから設定され、以後変更されない。
// DoneAtはステータスがdoneに遷移した時刻を保持し、todoに戻るとnilになる。
type Todo struct {
	ID        int64
	UserID    int64
	Title     string
	Status    TodoStatus
	DoneAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
