package usecase

import (
	"context"

	"nutrilens_backend/internal/feature/meals/domain/entity"
)

// MealRepository は食事記録の永続化を抽象化するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MealRepository interface {
	// Create は新しい食事記録を保存します。IDとCreatedAtは保存時に設定されます。
	Create(ctx context.Context, meal *entity.MealRecord) error
	// FindByID はIDで食事記録を1件取得します。
	FindByID(ctx context.Context, id uint) (*entity.MealRecord, error)
	// FindAllByUser は指定ユーザーの食事記録を新しい順で返します。
	FindAllByUser(ctx context.Context, userID uint) ([]entity.MealRecord, error)
}

// CreateInput は食事記録の作成に必要な入力です。
type CreateInput struct {
	Name            string
	ImageData       string
	TotalCalories   int
	ConfidenceScore int
	FoodItems       []entity.FoodItem
}

// mealsUsecase は食事記録のビジネスロジックを提供します。
type mealsUsecase struct {
	meals MealRepository
}

// NewMealsUsecase はmealsUsecaseの新しいインスタンスを生成します。
func NewMealsUsecase(meals MealRepository) *mealsUsecase {
	return &mealsUsecase{meals: meals}
}

// Create はセッションのユーザーを所有者として食事記録を保存します。
// 所有者はリクエストボディではなく認証情報から決定します。
func (u *mealsUsecase) Create(ctx context.Context, userID uint, in CreateInput) (*entity.MealRecord, error) {
	meal := &entity.MealRecord{
		UserID:          &userID,
		Name:            in.Name,
		ImageData:       in.ImageData,
		TotalCalories:   in.TotalCalories,
		ConfidenceScore: in.ConfidenceScore,
		FoodItems:       in.FoodItems,
	}
	if err := u.meals.Create(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// ListForUser は指定ユーザーの食事記録を新しい順で返します。
func (u *mealsUsecase) ListForUser(ctx context.Context, userID uint) ([]entity.MealRecord, error) {
	return u.meals.FindAllByUser(ctx, userID)
}

// GetForUser は食事記録を1件取得します。
// 所有者以外のアクセスはErrMealAccessDeniedになります。
func (u *mealsUsecase) GetForUser(ctx context.Context, userID, mealID uint) (*entity.MealRecord, error) {
	meal, err := u.meals.FindByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMealRead(meal, userID); err != nil {
		return nil, err
	}
	return meal, nil
}

// authorizeMealRead は読み取りアクセスの認可判定です。
// 所有者のいない行（UserIDがnil）も拒否します。
func authorizeMealRead(meal *entity.MealRecord, userID uint) error {
	if !meal.OwnedBy(userID) {
		return ErrMealAccessDenied
	}
	return nil
}
