package usecase

import (
	"context"
	"errors"
	"testing"

	"nutrilens_backend/internal/feature/meals/domain/entity"
)

// mockMealRepository is a mock implementation of the MealRepository interface.
type mockMealRepository struct {
	CreateFunc        func(ctx context.Context, meal *entity.MealRecord) error
	FindByIDFunc      func(ctx context.Context, id uint) (*entity.MealRecord, error)
	FindAllByUserFunc func(ctx context.Context, userID uint) ([]entity.MealRecord, error)
}

func (m *mockMealRepository) Create(ctx context.Context, meal *entity.MealRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, meal)
	}
	meal.ID = 1
	return nil
}

func (m *mockMealRepository) FindByID(ctx context.Context, id uint) (*entity.MealRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrMealNotFound
}

func (m *mockMealRepository) FindAllByUser(ctx context.Context, userID uint) ([]entity.MealRecord, error) {
	if m.FindAllByUserFunc != nil {
		return m.FindAllByUserFunc(ctx, userID)
	}
	return nil, nil
}

func uintPtr(v uint) *uint { return &v }

func TestMealsUsecase_Create(t *testing.T) {
	t.Run("owner is taken from the session", func(t *testing.T) {
		var saved *entity.MealRecord
		repo := &mockMealRepository{
			CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
				saved = meal
				meal.ID = 7
				return nil
			},
		}

		uc := NewMealsUsecase(repo)
		meal, err := uc.Create(context.Background(), 42, CreateInput{
			Name:            "Lunch",
			ImageData:       "AAAA",
			TotalCalories:   500,
			ConfidenceScore: 90,
			FoodItems:       []entity.FoodItem{{Name: "Rice", Calories: 260}},
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil || saved.UserID == nil || *saved.UserID != 42 {
			t.Error("owner was not set from the session user")
		}
		if meal.ID != 7 {
			t.Errorf("expected assigned ID 7, got %d", meal.ID)
		}
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockMealRepository{
			CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
				return expectedErr
			},
		}

		uc := NewMealsUsecase(repo)
		_, err := uc.Create(context.Background(), 42, CreateInput{Name: "Lunch"})

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestMealsUsecase_GetForUser(t *testing.T) {
	t.Run("owner can read the meal", func(t *testing.T) {
		repo := &mockMealRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.MealRecord, error) {
				return &entity.MealRecord{ID: id, UserID: uintPtr(42), Name: "Lunch"}, nil
			},
		}

		uc := NewMealsUsecase(repo)
		meal, err := uc.GetForUser(context.Background(), 42, 7)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meal.Name != "Lunch" {
			t.Errorf("expected meal 'Lunch', got %q", meal.Name)
		}
	})

	t.Run("another user's meal is denied", func(t *testing.T) {
		repo := &mockMealRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.MealRecord, error) {
				return &entity.MealRecord{ID: id, UserID: uintPtr(1)}, nil
			},
		}

		uc := NewMealsUsecase(repo)
		_, err := uc.GetForUser(context.Background(), 42, 7)

		if !errors.Is(err, ErrMealAccessDenied) {
			t.Errorf("expected ErrMealAccessDenied, got: %v", err)
		}
	})

	t.Run("ownerless meal is denied", func(t *testing.T) {
		repo := &mockMealRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.MealRecord, error) {
				return &entity.MealRecord{ID: id, UserID: nil}, nil
			},
		}

		uc := NewMealsUsecase(repo)
		_, err := uc.GetForUser(context.Background(), 42, 7)

		if !errors.Is(err, ErrMealAccessDenied) {
			t.Errorf("expected ErrMealAccessDenied, got: %v", err)
		}
	})

	t.Run("missing meal", func(t *testing.T) {
		uc := NewMealsUsecase(&mockMealRepository{})
		_, err := uc.GetForUser(context.Background(), 42, 999)

		if !errors.Is(err, ErrMealNotFound) {
			t.Errorf("expected ErrMealNotFound, got: %v", err)
		}
	})
}
