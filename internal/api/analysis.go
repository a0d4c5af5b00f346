package api

// AnalyzeRequest is the body of POST /api/analyze.
// ImageData holds either bare base64 or a data-URL-prefixed base64 image.
type AnalyzeRequest struct {
	ImageData string `json:"imageData" binding:"required"`
}

// MacrosPayload carries macronutrient amounts as display strings (e.g. "20g").
type MacrosPayload struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
}

// FoodItemPayload is one identified food item in an analysis or meal record.
type FoodItemPayload struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	ServingSize string        `json:"servingSize"`
	Calories    int           `json:"calories" binding:"gte=0"`
	Macros      MacrosPayload `json:"macros"`
}

// AnalysisResponse is the structured result of POST /api/analyze.
type AnalysisResponse struct {
	Name            string            `json:"name"`
	TotalCalories   int               `json:"totalCalories"`
	ConfidenceScore int               `json:"confidenceScore"`
	Items           []FoodItemPayload `json:"items"`
}
