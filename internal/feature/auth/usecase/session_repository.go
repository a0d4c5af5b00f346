package usecase

import (
	"context"

	"nutrilens_backend/internal/feature/auth/domain/entity"
)

// SessionRepository はサーバーサイドセッションの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type SessionRepository interface {
	// Create は新しいセッションをストアに永続化します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID は指定されたIDに一致するセッションを取得します。
	// セッションが存在しない場合、ErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke は指定されたセッションを失効させます。
	Revoke(ctx context.Context, id string) error
}
