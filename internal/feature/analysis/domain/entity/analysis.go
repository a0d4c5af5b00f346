// Package entity defines the domain models for the analysis feature.
package entity

// Macros holds the macronutrient amounts for a food item as display
// strings (e.g. "20g"). The string form is canonical from the vision
// model through storage to the client.
type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
}

// FoodItem is a single food item identified in a meal image.
type FoodItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ServingSize string `json:"servingSize"`
	Calories    int    `json:"calories"`
	Macros      Macros `json:"macros"`
}

// FoodAnalysis is the structured result of analyzing one meal image.
type FoodAnalysis struct {
	Name            string     // Meal display name (breakfast/lunch/dinner/snack)
	TotalCalories   int        // Estimated calories for the whole meal
	ConfidenceScore int        // Model confidence (0-100)
	Items           []FoodItem // Identified food items, in model order
}
