// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"hrm_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// emailPattern is the simple format check applied at registration.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByPhone は指定された電話番号に一致するユーザーを取得します。
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// List は登録済みの全ユーザーを取得します。
	List(ctx context.Context) ([]entity.User, error)

	// Update は既存ユーザーの属性を保存します。
	Update(ctx context.Context, user *entity.User) error

	// Delete は指定されたIDのユーザーを削除します。
	Delete(ctx context.Context, id uint) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email, role string) (string, error)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	Phone           string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// validateRegistration はパスワードとメールアドレスの要件を検証します。
func validateRegistration(in RegisterInput) error {
	if len(in.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if in.Role != "" && in.Role != entity.RoleHR && in.Role != entity.RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// 署名済みトークンと公開プロジェクションを返します。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	if err := validateRegistration(in); err != nil {
		return "", nil, err
	}

	// メールアドレスと電話番号の重複を事前にチェック
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return "", nil, ErrEmailAlreadyExists
	}
	if in.Phone != "" {
		if _, err := u.users.FindByPhone(ctx, in.Phone); err == nil {
			return "", nil, ErrPhoneAlreadyExists
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleHR
	}
	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     role,
	}
	if in.Phone != "" {
		user.Phone = &in.Phone
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email, user.Role)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, user, nil
}
