package usecase

import (
	"context"
	"errors"
	"strings"

	"goal_backend/internal/feature/auth/domain/entity"
	"goal_backend/internal/platform/apperr"
	"goal_backend/internal/platform/hash"
	jwtmw "goal_backend/internal/platform/jwt"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
	VerifyDummy(plain string)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	GenerateToken(userID string) (string, error)
}

// AuthResult は登録・ログイン成功時の結果です。
type AuthResult struct {
	User  *entity.User
	Token string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
}

var _ jwtmw.IdentityResolver = (*authUsecase)(nil)

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register は新規ユーザーを登録し、トークンを発行します。
// 重複チェックはストアの一意制約に任せます。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation(MsgMissingFields)
	}

	digest, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, hash.ErrPasswordTooLong) {
			return nil, apperr.Validation(MsgPasswordTooLong)
		}
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &entity.User{Name: name, Email: email, Password: digest}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, apperr.DuplicateIdentity(MsgUserExists)
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	return u.issue(user)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			u.hasher.VerifyDummy(password)
			return nil, apperr.InvalidCredentials(MsgInvalidCredentials)
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if !u.hasher.Verify(password, user.Password) {
		return nil, apperr.InvalidCredentials(MsgInvalidCredentials)
	}

	return u.issue(user)
}

// Me は認証済みユーザーのプロフィールを返します。
func (u *authUsecase) Me(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotAuthorized("User not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

// ResolveIdentity はトークンのsubjectをユーザーに解決します。
func (u *authUsecase) ResolveIdentity(ctx context.Context, userID string) (jwtmw.Identity, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return jwtmw.Identity{}, jwtmw.ErrUnknownSubject
		}
		return jwtmw.Identity{}, err
	}
	return jwtmw.Identity{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (u *authUsecase) issue(user *entity.User) (*AuthResult, error) {
	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("failed to generate token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
