package token

import (
	"testing"
	"time"

	"github.com/yamadatarousan/todoapp/internal/model"
)

// 発行直後のトークンが同じシークレットで検証でき、元の識別情報が復元されることを検証
func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	user := model.AuthUser{ID: 42, Email: "alice@example.com"}
	tokenString, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := m.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "alice@example.com")
	}
}

// 異なるシークレットで検証するとErrInvalidTokenになることを検証
func TestManager_VerifyWithDifferentSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	tokenString, err := issuer.Issue(model.AuthUser{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(tokenString); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// トークンの一部を改ざんすると検証に失敗することを検証
func TestManager_VerifyTamperedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tokenString, err := m.Issue(model.AuthUser{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// 末尾の1文字を別の文字に置き換える
	tampered := tokenString[:len(tokenString)-1]
	if tokenString[len(tokenString)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	if _, err := m.Verify(tampered); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// 期限切れトークンの検証が失敗することを検証
func TestManager_VerifyExpiredToken(t *testing.T) {
	// 有効期限を過去にして発行する
	m := NewManager("test-secret", -time.Minute)

	tokenString, err := m.Issue(model.AuthUser{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := m.Verify(tokenString); err != ErrInvalidToken {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// トークン文字列ですらない入力が失敗することを検証
func TestManager_VerifyMalformedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	cases := []string{"", "not.a.token", "abcdef"}
	for _, input := range cases {
		if _, err := m.Verify(input); err != ErrInvalidToken {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", input, err)
		}
	}
}

// 検証は副作用を持たず冪等であることを検証（同じ入力は同じ結果）
func TestManager_VerifyIsIdempotent(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tokenString, err := m.Issue(model.AuthUser{ID: 7, Email: "b@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	first, err := m.Verify(tokenString)
	if err != nil {
		t.Fatalf("first Verify() error = %v", err)
	}
	second, err := m.Verify(tokenString)
	if err != nil {
		t.Fatalf("second Verify() error = %v", err)
	}
	if first != second {
		t.Errorf("Verify results differ: %+v vs %+v", first, second)
	}
}
