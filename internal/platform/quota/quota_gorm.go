package quota

import (
	"context"

	"gorm.io/gorm"

	analysisusecase "nutrilens_backend/internal/feature/analysis/usecase"
	"nutrilens_backend/internal/feature/auth/domain/entity"
)

// ScanCounterGorm はRedisが使えない環境向けのフォールバック実装です。
// usersテーブルのscan_count列で使用回数を管理します。
type ScanCounterGorm struct {
	db *gorm.DB
}

// インターフェースを満たしているかコンパイル時に検証
var _ analysisusecase.ScanCounter = (*ScanCounterGorm)(nil)

// NewScanCounterGorm はScanCounterGormの新しいインスタンスを生成します。
func NewScanCounterGorm(db *gorm.DB) *ScanCounterGorm {
	return &ScanCounterGorm{db: db}
}

// Count は現在の使用回数を返します。
func (s *ScanCounterGorm) Count(ctx context.Context, userID uint) (int64, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).Select("scan_count").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.ScanCount, nil
}

// Increment は使用回数をアトミックに1増やし、新しい値を返します。
func (s *ScanCounterGorm) Increment(ctx context.Context, userID uint) (int64, error) {
	err := s.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("scan_count", gorm.Expr("scan_count + 1")).Error
	if err != nil {
		return 0, err
	}
	return s.Count(ctx, userID)
}

// Reset は使用回数を0に戻します。
func (s *ScanCounterGorm) Reset(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("scan_count", 0).Error
}
