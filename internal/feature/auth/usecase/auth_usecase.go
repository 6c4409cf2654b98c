package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"bookshelf_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByUsername returns ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername reports whether a user with username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create persists user and assigns its ID.
	// It returns ErrUsernameTaken when the unique index rejects the insert.
	Create(ctx context.Context, user *entity.User) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on a wrong password; an error only for a malformed hash.
	Verify(password, encoded string) (bool, error)
	// MaxPasswordBytes is the longest accepted password, or 0 when unbounded.
	MaxPasswordBytes() int
}

// TokenIssuer はJWTトークン生成のインターフェースを定義します。
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is verified when the user does not exist so both login
	// failure paths cost one hash verification.
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) (*authUsecase, error) {
	dummy, err := hasher.Hash("timing-equalization-placeholder")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &authUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// validateCredentials checks the shape of the input before any store access.
func (u *authUsecase) validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" || utf8.RuneCountInString(username) > entity.MaxUsernameLength {
		return ErrInvalidUsername
	}
	if password == "" {
		return ErrInvalidPasswordInput
	}
	if limit := u.hasher.MaxPasswordBytes(); limit > 0 && len(password) > limit {
		return ErrInvalidPasswordInput
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Register(ctx context.Context, username, password string) error {
	if err := u.validateCredentials(username, password); err != nil {
		return err
	}

	exists, err := u.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return ErrUsernameTaken
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// A concurrent registration can still win between the check and the insert;
	// the store's unique index reports it as ErrUsernameTaken.
	if err := u.users.Create(ctx, &entity.User{Username: username, PasswordHash: hashed}); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// ユーザー未検出とパスワード不一致は別のエラーとして返しますが、
// タイミング差を抑えるためユーザーが存在しない場合もハッシュ検証を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		_, _ = u.hasher.Verify(password, u.dummyHash)
		return "", ErrUserNotFound
	}

	ok, err := u.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidPassword
	}

	token, err := u.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
