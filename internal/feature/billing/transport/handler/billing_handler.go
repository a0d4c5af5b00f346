package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrilens_backend/internal/api"
	"nutrilens_backend/internal/feature/billing/usecase"
	sessionmw "nutrilens_backend/internal/platform/session"
)

// BillingUsecase はハンドラーが利用する課金ユースケースのインターフェースです。
type BillingUsecase interface {
	CreateSubscription(ctx context.Context, userID uint) (*usecase.Subscription, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

// BillingHandler はサブスクリプション課金のHTTPハンドラーです。
type BillingHandler struct {
	billing BillingUsecase
}

// NewBillingHandler はBillingHandlerの新しいインスタンスを生成します。
func NewBillingHandler(billing BillingUsecase) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// CreateSubscription は POST /api/create-subscription に対応するハンドラーです。
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	userID, ok := sessionmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authenticated"})
		return
	}

	sub, err := h.billing.CreateSubscription(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.SubscriptionResponse{
		SubscriptionID: sub.ID,
		ClientSecret:   sub.ClientSecret,
	})
}

// Webhook は POST /api/webhooks/stripe に対応するハンドラーです。
// 署名検証に失敗したペイロードは処理しません。
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.billing.ProcessWebhook(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, usecase.ErrInvalidWebhook) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid webhook signature"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error processing webhook"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
