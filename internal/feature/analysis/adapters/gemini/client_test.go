package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrilens_backend/internal/feature/analysis/usecase"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("valid model response", func(t *testing.T) {
		text := `{
			"name": "Grilled Chicken Salad",
			"totalCalories": 420,
			"confidenceScore": 85,
			"items": [
				{
					"name": "Grilled Chicken Breast",
					"description": "Seasoned and grilled",
					"servingSize": "150g",
					"calories": 250,
					"macros": {"protein": "46g", "carbs": "0g", "fat": "5g"}
				},
				{
					"name": "Mixed Greens",
					"description": "Lettuce, spinach and arugula",
					"servingSize": "100g",
					"calories": 170,
					"macros": {"protein": "3g", "carbs": "10g", "fat": "12g"}
				}
			]
		}`

		result, err := parseAnalysis(text)

		require.NoError(t, err, "failed to parse response")
		assert.Equal(t, "Grilled Chicken Salad", result.Name)
		assert.Equal(t, 420, result.TotalCalories)
		assert.Equal(t, 85, result.ConfidenceScore)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Grilled Chicken Breast", result.Items[0].Name)
		assert.Equal(t, "46g", result.Items[0].Macros.Protein)
		assert.Equal(t, 170, result.Items[1].Calories)
	})

	t.Run("empty items list", func(t *testing.T) {
		result, err := parseAnalysis(`{"name": "Empty Plate", "totalCalories": 0, "confidenceScore": 40, "items": []}`)

		require.NoError(t, err)
		assert.NotNil(t, result.Items, "items must be an empty slice, not nil")
		assert.Empty(t, result.Items)
	})

	t.Run("non-JSON response", func(t *testing.T) {
		_, err := parseAnalysis("I could not identify any food in this image.")

		assert.ErrorIs(t, err, usecase.ErrAnalysisFailed, "should wrap ErrAnalysisFailed")
	})

	t.Run("truncated JSON", func(t *testing.T) {
		_, err := parseAnalysis(`{"name": "Partial`)

		assert.ErrorIs(t, err, usecase.ErrAnalysisFailed)
	})
}
