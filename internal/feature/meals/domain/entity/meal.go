package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Macros holds macronutrient estimates as display strings such as "20g".
type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
}

// FoodItem is one identified food within a saved meal.
type FoodItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ServingSize string `json:"servingSize"`
	Calories    int    `json:"calories"`
	Macros      Macros `json:"macros"`
}

// FoodItemList is stored as a single JSON column on the meal row.
type FoodItemList []FoodItem

// Value serializes the list for database storage.
func (l FoodItemList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan deserializes the list from database storage.
func (l *FoodItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for FoodItemList: %T", value)
	}
}

// MealRecord is a persisted meal analysis owned by a user.
// UserID is nullable: rows saved before ownership tracking existed have no owner
// and are not readable through the API.
type MealRecord struct {
	ID              uint         `gorm:"primaryKey"`
	UserID          *uint        `gorm:"index"`
	Name            string       `gorm:"size:255;not null"`
	ImageData       string       `gorm:"type:text;not null"`
	TotalCalories   int          `gorm:"not null"`
	ConfidenceScore int          `gorm:"not null"`
	FoodItems       FoodItemList `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time
}

// TableName はGORMが使用するテーブル名を指定します。
func (MealRecord) TableName() string {
	return "meal_records"
}

// OwnedBy reports whether the meal belongs to the given user.
func (m *MealRecord) OwnedBy(userID uint) bool {
	return m.UserID != nil && *m.UserID == userID
}
