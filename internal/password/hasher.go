// Package password はパスワードのハッシュ化と検証を提供する。
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scryptのパラメータ。運用中に変更するとログインできなくなるため固定とする。
const (
	scryptN      = 32768 // CPU/メモリコスト
	scryptR      = 8     // ブロックサイズ
	scryptP      = 1     // 並列度
	scryptKeyLen = 64    // 導出キー長（バイト）
	saltLen      = 16    // ソルト長（バイト）
)

// Hasher はscryptによるパスワードのハッシュ化と検証を提供する。
// ハッシュとソルトはhex文字列として返し、そのままストレージに保存できる。
type Hasher struct{}

// NewHasher はHasherを生成する。
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash はパスワードから新しいランダムソルトとハッシュを生成する。
// ソルトはアカウントごとに毎回生成し、再利用しない。
func (h *Hasher) Hash(pw string) (hash, salt string, err error) {
	saltBytes := make([]byte, saltLen)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(pw), saltBytes, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(derived), hex.EncodeToString(saltBytes), nil
}

// Verify はパスワードが保存済みのソルト・ハッシュと一致するかを検証する。
// 長さ一致を確認した上で定数時間比較を行い、タイミングによる情報漏洩を防ぐ。
// ソルトやハッシュのエンコードが不正な場合も例外にはせずfalseを返す。
func (h *Hasher) Verify(pw, salt, storedHash string) bool {
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}

	computed, err := scrypt.Key([]byte(pw), saltBytes, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}

	return len(computed) == len(stored) && subtle.ConstantTimeCompare(computed, stored) == 1
}
