package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yamadatarousan/todoapp/internal/middleware"
	"github.com/yamadatarousan/todoapp/internal/model"
	"github.com/yamadatarousan/todoapp/internal/todo"
)

// TodoServiceInterface はTodoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	// List はユーザーのTodo一覧をID昇順で返す。
	List(ctx context.Context, userID int64) ([]*model.Todo, error)
	// Create はユーザーのTodoを新規作成する。
	Create(ctx context.Context, userID int64, title string) (*model.Todo, error)
	// Update はユーザー自身のTodoを部分更新する。
	Update(ctx context.Context, userID, todoID int64, input todo.UpdateInput) (*model.Todo, error)
	// Delete はユーザー自身のTodoを削除する。
	Delete(ctx context.Context, userID, todoID int64) error
}

// TodoHandler はTodo管理のHTTPハンドラー。
type TodoHandler struct {
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{service: service}
}

// --- リクエスト・レスポンス型 ---

// createTodoRequest はTodo作成リクエストのボディ。
type createTodoRequest struct {
	Title string `json:"title"`
}

// updateTodoRequest はTodo更新リクエストのボディ。nilのフィールドは変更しない。
type updateTodoRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// todoListResponse はTodo一覧のレスポンス。
type todoListResponse struct {
	Items []todoResponse `json:"items"`
}

// todoResponse はTodoのAPIレスポンス。
type todoResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DoneAt    *time.Time `json:"doneAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toTodoResponse(t *model.Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Status:    string(t.Status),
		DoneAt:    t.DoneAt,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// parseTodoID はパスパラメータのIDをint64に変換する。
// 数値でない場合はエラーを返す（存在チェックより先に弾く）。
func parseTodoID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List はユーザーのTodo一覧を取得する。
// GET /todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.AuthUserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 0件でもnullではなく空配列を返す
	items := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		items = append(items, toTodoResponse(t))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(todoListResponse{Items: items})
}

// Create はTodoを新規作成する。
// POST /todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.AuthUserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました。"))
		return
	}

	created, err := h.service.Create(r.Context(), user.ID, req.Title)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTodoResponse(created))
}

// Update はTodoを部分更新する。
// PUT /todos/{id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.AuthUserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	todoID, err := parseTodoID(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください。"))
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("リクエストボディの解析に失敗しました。"))
		return
	}

	input := todo.UpdateInput{Title: req.Title}
	if req.Status != nil {
		status := model.TodoStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.service.Update(r.Context(), user.ID, todoID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toTodoResponse(updated))
}

// Delete はTodoを削除する。
// DELETE /todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.AuthUserFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	todoID, err := parseTodoID(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("IDは数値で指定してください。"))
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, todoID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- エラーレスポンスヘルパー ---

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeEmailExists:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeTodoNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
