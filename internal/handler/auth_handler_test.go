package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yamadatarousan/todoapp/internal/auth"
	"github.com/yamadatarousan/todoapp/internal/middleware"
	"github.com/yamadatarousan/todoapp/internal/model"
)

// --- モック定義 ---

type mockAuthService struct {
	signUpFn func(ctx context.Context, email, password string) (*auth.Result, error)
	loginFn  func(ctx context.Context, email, password string) (*auth.Result, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password string) (*auth.Result, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, email, password)
	}
	return &auth.Result{Token: "token", User: model.AuthUser{ID: 1, Email: email}}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*auth.Result, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &auth.Result{Token: "token", User: model.AuthUser{ID: 1, Email: email}}, nil
}

// --- ヘルパー ---

// withAuthUser はテスト用にリクエストコンテキストに認証済みユーザーを注入するヘルパー。
func withAuthUser(r *http.Request, user model.AuthUser) *http.Request {
	return r.WithContext(middleware.ContextWithAuthUser(r.Context(), user))
}

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// --- テスト ---

func TestAuthHandler_Signup_Returns201WithToken(t *testing.T) {
	var gotEmail, gotPassword string
	service := &mockAuthService{
		signUpFn: func(_ context.Context, email, password string) (*auth.Result, error) {
			gotEmail, gotPassword = email, password
			return &auth.Result{Token: "new-token", User: model.AuthUser{ID: 1, Email: email}}, nil
		},
	}
	h := NewAuthHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"taro@example.com","password":"password123"}`))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if gotEmail != "taro@example.com" || gotPassword != "password123" {
		t.Errorf("service called with (%q, %q)", gotEmail, gotPassword)
	}

	var body authResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Token != "new-token" {
		t.Errorf("token = %q, want new-token", body.Token)
	}
	if body.User.ID != 1 || body.User.Email != "taro@example.com" {
		t.Errorf("user = %+v, want {1 taro@example.com}", body.User)
	}
}

func TestAuthHandler_Signup_InvalidJSON_Returns400(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != "INVALID_REQUEST" {
		t.Errorf("code = %q, want INVALID_REQUEST", body["code"])
	}
}

func TestAuthHandler_Signup_EmailExists_Returns409(t *testing.T) {
	service := &mockAuthService{
		signUpFn: func(_ context.Context, _, _ string) (*auth.Result, error) {
			return nil, model.NewEmailExistsError()
		},
	}
	h := NewAuthHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"taro@example.com","password":"password123"}`))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != "EMAIL_EXISTS" {
		t.Errorf("code = %q, want EMAIL_EXISTS", body["code"])
	}
}

func TestAuthHandler_Login_Returns200WithToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"taro@example.com","password":"password123"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body authResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Token == "" {
		t.Error("token is empty")
	}
	if body.User.Email != "taro@example.com" {
		t.Errorf("user.Email = %q, want taro@example.com", body.User.Email)
	}
}

func TestAuthHandler_Login_InvalidCredentials_Returns401(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (*auth.Result, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	}
	h := NewAuthHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"taro@example.com","password":"wrongpassword"}`))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("code = %q, want INVALID_CREDENTIALS", body["code"])
	}
}

func TestAuthHandler_Me_ReturnsAuthUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = withAuthUser(req, model.AuthUser{ID: 42, Email: "taro@example.com"})
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body userResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != 42 || body.Email != "taro@example.com" {
		t.Errorf("body = %+v, want {42 taro@example.com}", body)
	}
}

func TestAuthHandler_Me_NoAuthUser_Returns401(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()

	h.Me(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
