// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"nutrilens_backend/internal/feature/analysis/adapters/gemini"
	infrahttp "nutrilens_backend/internal/platform/http"
)

// NewFoodAnalyzer creates a fully configured Gemini analyzer with HTTP client.
func NewFoodAnalyzer(ctx context.Context, apiKey string) (*gemini.FoodAnalyzer, error) {
	httpClient := infrahttp.NewHTTPClient(60 * time.Second)
	return gemini.NewFoodAnalyzer(ctx, apiKey, httpClient)
}
