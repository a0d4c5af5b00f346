package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"nutrilens_backend/internal/app/di"
	"nutrilens_backend/internal/app/router"
	analysishandler "nutrilens_backend/internal/feature/analysis/transport/handler"
	analysisusecase "nutrilens_backend/internal/feature/analysis/usecase"
	authadapters "nutrilens_backend/internal/feature/auth/adapters"
	authhandler "nutrilens_backend/internal/feature/auth/transport/handler"
	authusecase "nutrilens_backend/internal/feature/auth/usecase"
	"nutrilens_backend/internal/feature/billing/adapters/stripeapi"
	billinghandler "nutrilens_backend/internal/feature/billing/transport/handler"
	billingusecase "nutrilens_backend/internal/feature/billing/usecase"
	mealadapters "nutrilens_backend/internal/feature/meals/adapters"
	mealhandler "nutrilens_backend/internal/feature/meals/transport/handler"
	mealusecase "nutrilens_backend/internal/feature/meals/usecase"
	"nutrilens_backend/internal/platform/config"
	infradb "nutrilens_backend/internal/platform/db"
	jwtmw "nutrilens_backend/internal/platform/jwt"
	infraredis "nutrilens_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// db
	db := infradb.OpenDB(cfg.DatabaseURL, cfg.RunMigrations)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to database-backed sessions and quota.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	mealRepo := mealadapters.NewMealPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	scanCounter := di.NewScanCounter(rdb, db)

	// 外部サービス
	analyzer, err := di.NewFoodAnalyzer(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("failed to initialize analyzer: %v", err)
	}
	payments := stripeapi.NewClient(stripeapi.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		PriceID:       cfg.StripePriceID,
	})

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, cfg.SessionTTL)
	analysisUC := analysisusecase.NewAnalysisUsecase(analyzer, userRepo, scanCounter, cfg.FreeScanLimit)
	mealsUC := mealusecase.NewMealsUsecase(mealRepo)
	billingUC := billingusecase.NewBillingUsecase(payments, userRepo, scanCounter)

	// Handler
	tokens := jwtmw.NewCodec(cfg.SessionSecret)
	secureCookies := os.Getenv("GIN_MODE") == "release"
	authH := authhandler.NewAuthHandler(authUC, tokens, secureCookies)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)
	mealsH := mealhandler.NewMealHandler(mealsUC)
	billingH := billinghandler.NewBillingHandler(billingUC)

	// ルータ生成
	r := router.NewRouter(authH, analysisH, mealsH, billingH, tokens, sessionRepo, cfg.AllowedOrigins)

	// APIキーチェック（開発中の注意喚起）
	if cfg.GeminiAPIKey == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set. Image analysis requests will fail.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
