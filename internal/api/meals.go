package api

import "time"

// CreateMealRequest is the body of POST /api/meals.
// The owning user comes from the session, never from the body.
type CreateMealRequest struct {
	Name            string            `json:"name" binding:"required,max=255"`
	ImageData       string            `json:"imageData" binding:"required"`
	TotalCalories   int               `json:"totalCalories" binding:"gte=0"`
	ConfidenceScore int               `json:"confidenceScore" binding:"gte=0,lte=100"`
	FoodItems       []FoodItemPayload `json:"foodItems" binding:"required,dive"`
}

// MealResponse is a persisted meal record.
type MealResponse struct {
	ID              uint              `json:"id"`
	Name            string            `json:"name"`
	ImageData       string            `json:"imageData"`
	TotalCalories   int               `json:"totalCalories"`
	ConfidenceScore int               `json:"confidenceScore"`
	Timestamp       time.Time         `json:"timestamp"`
	FoodItems       []FoodItemPayload `json:"foodItems"`
}
