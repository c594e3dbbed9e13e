package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yamadatarousan/todoapp/internal/model"
)

// PostgresTodoRepo はPostgreSQLを使用したTodoリポジトリ。
type PostgresTodoRepo struct {
	db *sql.DB
}

// NewPostgresTodoRepo はPostgresTodoRepoを生成する。
func NewPostgresTodoRepo(db *sql.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db}
}

// ListByUserID は指定ユーザーが所有するTodoを作成順（id昇順）で返す。
// 結果は空の場合でもnilではなく空スライスを返す。
func (r *PostgresTodoRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, status, done_at, created_at, updated_at
		 FROM todos WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("Todo一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	todos := []*model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Todo一覧の読み取りに失敗しました: %w", err)
	}

	return todos, nil
}

// Create はTodoを作成する。IDと日時はストレージが採番した値を設定して返す。
func (r *PostgresTodoRepo) Create(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todos (user_id, title, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		todo.UserID, todo.Title, todo.Status,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("Todoの作成に失敗しました: %w", err)
	}

	return todo, nil
}

// Update は (id, user_id) に一致するTodoを1文のUPDATEで部分更新する。
// 取得してから所有者を確認する方式は使わず、複合条件を述語そのものに含める。
// statusを指定した場合、doneならdone_atに現在時刻を記録し、todoならクリアする。
// 一致する行がない場合はnilを返す。
func (r *PostgresTodoRepo) Update(ctx context.Context, id, userID int64, title *string, status *model.TodoStatus) (*model.Todo, error) {
	var statusStr *string
	if status != nil {
		s := string(*status)
		statusStr = &s
	}

	row := r.db.QueryRowContext(ctx,
		`UPDATE todos SET
		    title = COALESCE($3, title),
		    status = COALESCE($4, status),
		    done_at = CASE
		        WHEN $4::text IS NULL THEN done_at
		        WHEN $4::text = 'done' THEN now()
		        ELSE NULL
		    END,
		    updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, status, done_at, created_at, updated_at`,
		id, userID, title, statusStr,
	)

	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Todoの更新に失敗しました: %w", err)
	}

	return todo, nil
}

// Delete は (id, user_id) に一致するTodoを削除する。
// 削除した場合はtrue、一致する行がない場合はfalseを返す。
func (r *PostgresTodoRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("Todoの削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}

	return rowsAffected > 0, nil
}

// rowScanner はsql.Rowとsql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTodo は1行分のTodoをスキャンする。
func scanTodo(row rowScanner) (*model.Todo, error) {
	todo := &model.Todo{}
	var doneAt sql.NullTime

	err := row.Scan(
		&todo.ID, &todo.UserID, &todo.Title, &todo.Status,
		&doneAt, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if doneAt.Valid {
		todo.DoneAt = &doneAt.Time
	}

	return todo, nil
}
