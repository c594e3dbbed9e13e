package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	mw := NewRequestIDMiddleware()

	var capturedID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if capturedID == "" {
		t.Error("request ID not injected into context")
	}
	if got := w.Result().Header.Get("X-Request-ID"); got != capturedID {
		t.Errorf("response header = %q, want %q", got, capturedID)
	}
}

func TestRequestIDMiddleware_PropagatesClientID(t *testing.T) {
	mw := NewRequestIDMiddleware()

	var capturedID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if capturedID != "client-supplied-id" {
		t.Errorf("request ID = %q, want client-supplied-id", capturedID)
	}
}

func TestRequestIDMiddleware_UniquePerRequest(t *testing.T) {
	mw := NewRequestIDMiddleware()

	ids := make(map[string]bool)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[RequestIDFromContext(r.Context())] = true
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/todos", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(ids) != 10 {
		t.Errorf("unique IDs = %d, want 10", len(ids))
	}
}

func TestRequestIDFromContext_NotSet_ReturnsEmpty(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}
