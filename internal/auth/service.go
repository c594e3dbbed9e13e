// Package auth はサインアップ・ログインおよびトークン発行のビジネスロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/yamadatarousan/todoapp/internal/model"
	"github.com/yamadatarousan/todoapp/internal/repository"
)

// passwordMinLength はパスワードの最小文字数。
const passwordMinLength = 8

// emailPattern はメールアドレスの最小限の形状チェック。
// 厳密なRFC検証は行わず、local@domain.tld の形のみを要求する。
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordHasher はパスワードのハッシュ化と検証のインターフェース。
// password.Hasherの部分集合として定義する。
type PasswordHasher interface {
	Hash(pw string) (hash, salt string, err error)
	Verify(pw, salt, storedHash string) bool
}

// TokenIssuer はトークン発行のインターフェース。
// token.Managerの部分集合として定義する。
type TokenIssuer interface {
	Issue(user model.AuthUser) (string, error)
}

// MetricsRecorder は認証関連メトリクスの記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordSignup()
	RecordLoginSuccess()
	RecordLoginFailure()
}

// Result は認証成功時の結果を表す。
type Result struct {
	Token string
	User  model.AuthUser
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	metrics  MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  metrics,
	}
}

// NormalizeEmail はメールアドレスを正規化する（trim + 小文字化）。
// 保存・検索は常に正規化後の値で行う。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials はメールアドレスの形状とパスワード長を検証する。
// 違反があれば副作用を起こす前にエラーを返す。
func validateCredentials(email, pw string) error {
	if !emailPattern.MatchString(email) {
		return model.NewInvalidRequestError("メールアドレスの形式が正しくありません。")
	}
	if len(pw) < passwordMinLength {
		return model.NewInvalidRequestError("パスワードは8文字以上で指定してください。")
	}
	return nil
}

// SignUp は新規ユーザーを登録し、トークンを発行する。
// 事前の重複チェックに加えて、ストレージの一意制約違反も同じ重複エラーに変換する。
// 同時サインアップの競合は制約側で確実に防がれる。
func (s *Service) SignUp(ctx context.Context, email, pw string) (*Result, error) {
	email = NormalizeEmail(email)
	if err := validateCredentials(email, pw); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailExistsError()
	}

	hash, salt, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		// 同時サインアップとの競合。事前チェック済みでも制約違反は起こりうる。
		if errors.Is(err, model.ErrDuplicateEmail) {
			return nil, model.NewEmailExistsError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	authUser := model.AuthUser{ID: user.ID, Email: user.Email}
	tokenString, err := s.tokens.Issue(authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordSignup()
	slog.Info("user signed up", slog.Int64("user_id", user.ID))

	return &Result{Token: tokenString, User: authUser}, nil
}

// Login は認証情報を検証し、トークンを発行する。
// ユーザー不存在とパスワード不一致は外部から区別できない同一のエラーになる。
func (s *Service) Login(ctx context.Context, email, pw string) (*Result, error) {
	email = NormalizeEmail(email)
	if err := validateCredentials(email, pw); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		s.metrics.RecordLoginFailure()
		return nil, model.NewInvalidCredentialsError()
	}

	if !s.hasher.Verify(pw, user.PasswordSalt, user.PasswordHash) {
		s.metrics.RecordLoginFailure()
		return nil, model.NewInvalidCredentialsError()
	}

	authUser := model.AuthUser{ID: user.ID, Email: user.Email}
	tokenString, err := s.tokens.Issue(authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordLoginSuccess()
	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	return &Result{Token: tokenString, User: authUser}, nil
}
