package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrilens_backend/internal/api"
	"nutrilens_backend/internal/feature/analysis/domain/entity"
	"nutrilens_backend/internal/feature/analysis/usecase"
	sessionmw "nutrilens_backend/internal/platform/session"
)

// AnalysisUsecase はハンドラーが利用する食事解析ユースケースのインターフェースです。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, userID *uint, imageData string) (*entity.FoodAnalysis, error)
}

// AnalysisHandler は食事画像解析のHTTPハンドラーです。
type AnalysisHandler struct {
	analysis AnalysisUsecase
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(analysis AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// Analyze は POST /api/analyze に対応するハンドラーです。
// 認証はオプションで、ログイン済みの未購読ユーザーのみ無料枠を消費します。
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Image data is required and must be a base64 string"})
		return
	}

	var userID *uint
	if id, ok := sessionmw.UserID(c); ok {
		userID = &id
	}

	result, err := h.analysis.Analyze(c.Request.Context(), userID, req.ImageData)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidImage), errors.Is(err, usecase.ErrImageTooLarge):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		case errors.Is(err, usecase.ErrQuotaExceeded):
			slog.Info("free scan limit reached", "remote_addr", c.ClientIP())
			c.JSON(http.StatusPaymentRequired, api.ErrorResponse{Message: "Free scan limit reached. Subscribe to continue scanning."})
		default:
			slog.Error("food analysis failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(result))
}

// toAnalysisResponse はドメインエンティティをAPIレスポンスに変換します。
func toAnalysisResponse(a *entity.FoodAnalysis) api.AnalysisResponse {
	items := make([]api.FoodItemPayload, 0, len(a.Items))
	for _, it := range a.Items {
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
	return api.AnalysisResponse{
		Name:            a.Name,
		TotalCalories:   a.TotalCalories,
		ConfidenceScore: a.ConfidenceScore,
		Items:           items,
	}
}
