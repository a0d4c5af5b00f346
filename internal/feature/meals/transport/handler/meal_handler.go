package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutrilens_backend/internal/api"
	"nutrilens_backend/internal/feature/meals/domain/entity"
	"nutrilens_backend/internal/feature/meals/usecase"
	sessionmw "nutrilens_backend/internal/platform/session"
)

// MealsUsecase はハンドラーが利用する食事記録ユースケースのインターフェースです。
type MealsUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.CreateInput) (*entity.MealRecord, error)
	ListForUser(ctx context.Context, userID uint) ([]entity.MealRecord, error)
	GetForUser(ctx context.Context, userID, mealID uint) (*entity.MealRecord, error)
}

// MealHandler は食事記録のHTTPハンドラーです。
type MealHandler struct {
	meals MealsUsecase
}

// NewMealHandler はMealHandlerの新しいインスタンスを生成します。
func NewMealHandler(meals MealsUsecase) *MealHandler {
	return &MealHandler{meals: meals}
}

// Create は POST /api/meals に対応するハンドラーです。
// 所有者はセッションから決定し、リクエストボディのユーザー指定は受け付けません。
func (h *MealHandler) Create(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	var req api.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		return
	}

	meal, err := h.meals.Create(c.Request.Context(), userID, usecase.CreateInput{
		Name:            req.Name,
		ImageData:       req.ImageData,
		TotalCalories:   req.TotalCalories,
		ConfidenceScore: req.ConfidenceScore,
		FoodItems:       toFoodItems(req.FoodItems),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error saving meal"})
		return
	}

	c.JSON(http.StatusCreated, toMealResponse(meal))
}

// List は GET /api/meals に対応するハンドラーです。
func (h *MealHandler) List(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	meals, err := h.meals.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error fetching meals"})
		return
	}

	// 0件でもnullではなく空配列を返す
	res := make([]api.MealResponse, 0, len(meals))
	for i := range meals {
		res = append(res, toMealResponse(&meals[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Get は GET /api/meals/:id に対応するハンドラーです。
func (h *MealHandler) Get(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid meal ID"})
		return
	}

	meal, err := h.meals.GetForUser(c.Request.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMealNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Meal not found"})
		case errors.Is(err, usecase.ErrMealAccessDenied):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error fetching meal"})
		}
		return
	}

	c.JSON(http.StatusOK, toMealResponse(meal))
}

// toFoodItems はAPIペイロードをドメインエンティティに変換します。
func toFoodItems(items []api.FoodItemPayload) []entity.FoodItem {
	out := make([]entity.FoodItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.FoodItem{
			Name:        it.Name,
			Description: it.Description,
			ServingSize: it.ServingSize,
			Calories:    it.Calories,
			Macros: entity.Macros{
				Protein: it.Macros.Protein,
				Carbs:   it.Macros.Carbs,
				Fat:     it.Macros.Fat,
			},
		})
	}
	return out
}

// toMealResponse はドメインエンティティをAPIレスポンスに変換します。
func toMealResponse(m *entity.MealRecord) api.MealResponse {
	items := make([]api.FoodItemPayload, 0, len(m.FoodItems))
	for _, it := range m.FoodItems {
		items = append(items, api.FoodItemPayload{
			Name:        it.Name,
			Description: it.Description,
			ServingSize: it.ServingSize,
			Calories:    it.Calories,
			Macros: api.MacrosPayload{
				Protein: it.Macros.Protein,
				Carbs:   it.Macros.Carbs,
				Fat:     it.Macros.Fat,
			},
		})
	}
	return api.MealResponse{
		ID:              m.ID,
		Name:            m.Name,
		ImageData:       m.ImageData,
		TotalCalories:   m.TotalCalories,
		ConfidenceScore: m.ConfidenceScore,
		Timestamp:       m.CreatedAt,
		FoodItems:       items,
	}
}
