package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nutrilens_backend/internal/feature/meals/domain/entity"
	"nutrilens_backend/internal/feature/meals/usecase"
)

// mealPostgres はGORMを利用したMealRepositoryの実装です。
type mealPostgres struct {
	db *gorm.DB
}

// インターフェースを満たしているかコンパイル時に検証
var _ usecase.MealRepository = (*mealPostgres)(nil)

// NewMealPostgres はmealPostgresの新しいインスタンスを生成します。
func NewMealPostgres(db *gorm.DB) *mealPostgres {
	return &mealPostgres{db: db}
}

// Create は食事記録を保存します。
func (r *mealPostgres) Create(ctx context.Context, meal *entity.MealRecord) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

// FindByID はIDで食事記録を1件取得します。
func (r *mealPostgres) FindByID(ctx context.Context, id uint) (*entity.MealRecord, error) {
	var meal entity.MealRecord
	if err := r.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// FindAllByUser は指定ユーザーの食事記録を新しい順で返します。
// 同時刻の行はIDの降順で安定させます。
func (r *mealPostgres) FindAllByUser(ctx context.Context, userID uint) ([]entity.MealRecord, error) {
	var meals []entity.MealRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}
