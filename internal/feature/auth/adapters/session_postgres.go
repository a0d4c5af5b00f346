package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nutrilens_backend/internal/feature/auth/domain/entity"
	"nutrilens_backend/internal/feature/auth/usecase"
)

// sessionPostgres はSessionRepositoryインターフェースのPostgreSQL実装です。
// Redisが利用できない環境向けのフォールバックです。
type sessionPostgres struct {
	db *gorm.DB
}

// sessionPostgresがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*sessionPostgres)(nil)

// NewSessionPostgres は指定されたgorm.DB接続でsessionPostgresの新しいインスタンスを生成します。
func NewSessionPostgres(db *gorm.DB) *sessionPostgres {
	return &sessionPostgres{db: db}
}

// Create は新しいセッションをデータベースに永続化します。
func (r *sessionPostgres) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(SessionModelFromEntity(s)).Error
}

// FindByID はIDでセッションを取得します。
// セッションが存在しない場合、usecase.ErrSessionNotFoundを返します。
func (r *sessionPostgres) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Revoke は指定されたセッションを失効させます。
// セッションが存在しない場合、usecase.ErrSessionNotFoundを返します。
func (r *sessionPostgres) Revoke(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 既に失効済みか、存在しないか。区別のため読み直す。
		var m SessionModel
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrSessionNotFound
			}
			return err
		}
	}
	return nil
}
