package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"nutrilens_backend/internal/feature/analysis/domain/entity"
	"nutrilens_backend/internal/feature/analysis/usecase"
)

// DefaultModel は食事画像解析に使用するGeminiモデルです。
const DefaultModel = "gemini-2.5-flash"

// analysisPrompt はモデルに厳密なJSON形式での応答を要求します。
const analysisPrompt = `Analyze this food image and provide a detailed nutritional breakdown. ` +
	`Respond with a single JSON object in exactly this format: ` +
	`{"name": "name of the overall meal", "totalCalories": number, "confidenceScore": number between 0 and 100, ` +
	`"items": [{"name": "food item name", "description": "brief description", "servingSize": "estimated serving size", ` +
	`"calories": number, "macros": {"protein": "Xg", "carbs": "Xg", "fat": "Xg"}}]}. ` +
	`Identify each distinct food item in the image. Estimate calories and macronutrients realistically based on the ` +
	`visible portion sizes. Express macro values as strings with a unit suffix, for example "20g". ` +
	`Respond with the JSON object only, no other text.`

// FoodAnalyzer はGemini APIを利用した食事画像解析クライアントです。
type FoodAnalyzer struct {
	client *genai.Client
	model  string
}

// インターフェースを満たしているかコンパイル時に検証
var _ usecase.FoodAnalyzer = (*FoodAnalyzer)(nil)

// NewFoodAnalyzer はGeminiクライアントを初期化してFoodAnalyzerを生成します。
func NewFoodAnalyzer(ctx context.Context, apiKey string, httpClient *http.Client) (*FoodAnalyzer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &FoodAnalyzer{client: client, model: DefaultModel}, nil
}

// Analyze はbase64画像をGeminiに送信し、構造化された食事分析を返します。
func (f *FoodAnalyzer) Analyze(ctx context.Context, imageBase64 string) (*entity.FoodAnalysis, error) {
	img, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image", usecase.ErrAnalysisFailed)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(analysisPrompt),
		genai.NewPartFromBytes(img, "image/jpeg"),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := f.client.Models.GenerateContent(ctx, f.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrAnalysisFailed, err)
	}

	return parseAnalysis(resp.Text())
}

// geminiAnalysis はモデル応答のJSONバインディング用DTOです。
type geminiAnalysis struct {
	Name            string `json:"name"`
	TotalCalories   int    `json:"totalCalories"`
	ConfidenceScore int    `json:"confidenceScore"`
	Items           []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ServingSize string `json:"servingSize"`
		Calories    int    `json:"calories"`
		Macros      struct {
			Protein string `json:"protein"`
			Carbs   string `json:"carbs"`
			Fat     string `json:"fat"`
		} `json:"macros"`
	} `json:"items"`
}

// parseAnalysis はモデル応答のJSONをドメインエンティティに変換します。
func parseAnalysis(text string) (*entity.FoodAnalysis, error) {
	var parsed geminiAnalysis
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: unexpected model response", usecase.ErrAnalysisFailed)
	}

	items := make([]entity.FoodItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, entity.FoodItem{
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

	return &entity.FoodAnalysis{
		Name:            parsed.Name,
		TotalCalories:   parsed.TotalCalories,
		ConfidenceScore: parsed.ConfidenceScore,
		Items:           items,
	}, nil
}
