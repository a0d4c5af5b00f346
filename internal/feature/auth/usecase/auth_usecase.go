package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nutrilens_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名のユーザーが既に存在する場合、ErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error
}

// RegisterInput は新規登録のための入力です。
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	DisplayName     string
	ProfilePicture  string
}

// ProfileInput はプロフィール部分更新のための入力です。nilのフィールドは変更されません。
type ProfileInput struct {
	DisplayName    *string
	ProfilePicture *string
}

// SessionMeta はセッション監査用のクライアント情報です。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	sessionTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、セッションを発行します。
// 確認用パスワードが一致しない場合はErrPasswordMismatchを返し、ユーザーは作成されません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput, meta SessionMeta) (*entity.User, *entity.Session, error) {
	if in.Password != in.ConfirmPassword {
		return nil, nil, ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:           in.Username,
		Password:           string(hashed),
		DisplayName:        in.DisplayName,
		ProfilePicture:     in.ProfilePicture,
		SubscriptionStatus: entity.SubscriptionNone,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := u.startSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login はユーザーを認証し、成功時に新しいセッションを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string, meta SessionMeta) (*entity.User, *entity.Session, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := u.startSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout は指定されたセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// CurrentUser はIDでユーザーを取得します。
func (u *authUsecase) CurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile は表示名とプロフィール画像を部分更新します。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// startSession は新しいセッションを生成して永続化します。
func (u *authUsecase) startSession(ctx context.Context, userID uint, meta SessionMeta) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}
