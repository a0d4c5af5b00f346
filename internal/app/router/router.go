package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "nutrilens_backend/internal/feature/analysis/transport/handler"
	authhandler "nutrilens_backend/internal/feature/auth/transport/handler"
	billinghandler "nutrilens_backend/internal/feature/billing/transport/handler"
	mealhandler "nutrilens_backend/internal/feature/meals/transport/handler"
	"nutrilens_backend/internal/platform/http/handler"
	sessionmw "nutrilens_backend/internal/platform/session"
)

// NewRouter wires all HTTP routes and middleware.
func NewRouter(
	auth *authhandler.AuthHandler,
	analysis *analysishandler.AnalysisHandler,
	meals *mealhandler.MealHandler,
	billing *billinghandler.BillingHandler,
	tokens sessionmw.TokenParser,
	sessions sessionmw.SessionFinder,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.Default()

	// Cookie認証のためAllowCredentialsが必要
	if len(allowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Stripe-Signature")
		r.Use(cors.New(cfg))
	}

	// 認証不要
	// 導通確認用
	r.GET("/api/health", handler.Health)
	// 新規ユーザー登録
	r.POST("/api/auth/register", auth.Register)
	// ログイン（セッションCookie発行）
	r.POST("/api/auth/login", auth.Login)
	// 食事画像解析（未ログインでも利用可、ログイン時は無料枠を消費）
	r.POST("/api/analyze", sessionmw.AuthOptional(tokens, sessions), analysis.Analyze)
	// Stripe Webhook（署名検証はハンドラー側で実施）
	r.POST("/api/webhooks/stripe", billing.Webhook)

	// 認証必須のルート
	authed := r.Group("/api")
	authed.Use(sessionmw.AuthRequired(tokens, sessions))
	{
		authed.POST("/auth/logout", auth.Logout)
		authed.GET("/auth/me", auth.Me)
		authed.PUT("/auth/profile", auth.UpdateProfile)
		authed.GET("/meals", meals.List)
		authed.POST("/meals", meals.Create)
		authed.GET("/meals/:id", meals.Get)
		authed.POST("/create-subscription", billing.CreateSubscription)
	}

	return r
}
