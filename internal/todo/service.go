// Package todo はTodoのCRUDビジネスロジックを提供する。
// すべての操作は認証済みユーザーのIDでスコープされ、
// 他ユーザーのTodoは存在しないものとして扱われる。
package todo

import (
	"context"
	"fmt"

	"github.com/yamadatarousan/todoapp/internal/model"
	"github.com/yamadatarousan/todoapp/internal/repository"
)

// TitleSanitizer はタイトルのサニタイズインターフェース。
// security.TitleSanitizerServiceの部分集合として定義する。
type TitleSanitizer interface {
	Sanitize(title string) string
}

// MetricsRecorder はTodo操作メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordTodoMutation(operation string)
}

// UpdateInput はTodo更新の入力を表す。nilのフィールドは変更しない。
type UpdateInput struct {
	Title  *string
	Status *model.TodoStatus
}

// Service はTodoに関するビジネスロジックを提供する。
type Service struct {
	todoRepo  repository.TodoRepository
	sanitizer TitleSanitizer
	metrics   MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(todoRepo repository.TodoRepository, sanitizer TitleSanitizer, metrics MetricsRecorder) *Service {
	return &Service{
		todoRepo:  todoRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// List はユーザーのTodo一覧をID昇順で返す。
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Todo, error) {
	todos, err := s.todoRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create はユーザーのTodoを新規作成する。
// タイトルはサニタイズされ、結果が空になる場合はエラーを返す。
func (s *Service) Create(ctx context.Context, userID int64, title string) (*model.Todo, error) {
	title = s.sanitizer.Sanitize(title)
	if title == "" {
		return nil, model.NewInvalidRequestError("タイトルを指定してください。")
	}

	created, err := s.todoRepo.Create(ctx, &model.Todo{
		UserID: userID,
		Title:  title,
		Status: model.TodoStatusTodo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.metrics.RecordTodoMutation("create")
	return created, nil
}

// Update はユーザー自身のTodoを部分更新する。
// タイトルとステータスの少なくとも一方の指定が必要。
// 対象が存在しない場合と他ユーザーのものである場合は同一のエラーになる。
func (s *Service) Update(ctx context.Context, userID, todoID int64, input UpdateInput) (*model.Todo, error) {
	if input.Title == nil && input.Status == nil {
		return nil, model.NewInvalidRequestError("タイトルまたはステータスを指定してください。")
	}
	if input.Title != nil {
		title := s.sanitizer.Sanitize(*input.Title)
		if title == "" {
			return nil, model.NewInvalidRequestError("タイトルを指定してください。")
		}
		input.Title = &title
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, model.NewInvalidRequestError("ステータスは todo または done を指定してください。")
	}

	updated, err := s.todoRepo.Update(ctx, todoID, userID, input.Title, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	if updated == nil {
		return nil, model.NewTodoNotFoundError(todoID)
	}

	s.metrics.RecordTodoMutation("update")
	return updated, nil
}

// Delete はユーザー自身のTodoを削除する。
// 対象が存在しない場合と他ユーザーのものである場合は同一のエラーになる。
func (s *Service) Delete(ctx context.Context, userID, todoID int64) error {
	deleted, err := s.todoRepo.Delete(ctx, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if !deleted {
		return model.NewTodoNotFoundError(todoID)
	}

	s.metrics.RecordTodoMutation("delete")
	return nil
}
