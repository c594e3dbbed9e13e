// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TitleSanitizerService はユーザー入力のTodoタイトルをサニタイズし、
// 保存データへのHTMLタグ混入を防ぐ。Todoのタイトルはプレーンテキストとして
// 扱うため、bluemondayのStrictPolicy（全タグ除去）を使用する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TitleSanitizerService はタイトルのサニタイズ機能のインターフェースを定義する。
// Todoの作成・更新時、保存前に使用される。
type TitleSanitizerService interface {
	// Sanitize はタイトルから全てのHTMLタグを除去し、前後の空白を取り除いて返す。
	// タグのみで構成された入力は空文字列になる（呼び出し側で空タイトルとして扱う）。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(title string) string
}

// titleSanitizer はTitleSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type titleSanitizer struct {
	policy *bluemonday.Policy
}

// NewTitleSanitizer はTitleSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは全てのタグと属性を除去し、テキストのみを残す。
func NewTitleSanitizer() *titleSanitizer {
	return &titleSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize はタイトルから全てのHTMLタグを除去して返す。
func (s *titleSanitizer) Sanitize(title string) string {
	return strings.TrimSpace(s.policy.Sanitize(title))
}

// compile-time interface check
var _ TitleSanitizerService = (*titleSanitizer)(nil)
