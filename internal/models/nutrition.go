package models

import "time"

// FoodInventoryItem is one food the user has on hand, deduplicated by name
// per user. The list feeds diet plan generation.
type FoodInventoryItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null;uniqueIndex:idx_user_food,priority:1" json:"user_id"`
	FoodName string `gorm:"not null;uniqueIndex:idx_user_food,priority:2" json:"food_name"`
}

// TableName keeps the table aligned with the versioned schema.
func (FoodInventoryItem) TableName() string { return "food_inventory" }

// MealLog is an append-only record of an eaten meal with nutrition totals.
type MealLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	MealType         string    `json:"meal_type"`
	FoodItems        string    `json:"food_items"`
	CaloriesConsumed float64   `json:"calories_consumed"`
	ProteinG         float64   `json:"protein_g"`
	CarbsG           float64   `json:"carbs_g"`
	FatG             float64   `json:"fat_g"`
	LoggedAt         time.Time `gorm:"index" json:"logged_at"`
}

// MealLogInput is the payload for logging an eaten meal. LoggedAt defaults
// to the current time when omitted.
type MealLogInput struct {
	MealType         string     `json:"meal_type"`
	FoodItems        string     `json:"food_items"`
	CaloriesConsumed float64    `json:"calories_consumed"`
	ProteinG         float64    `json:"protein_g"`
	CarbsG           float64    `json:"carbs_g"`
	FatG             float64    `json:"fat_g"`
	LoggedAt         *time.Time `json:"logged_at,omitempty"`
}

// NutritionDay is one calendar day of aggregated meal logs. TargetCalories is
// the most recent diet plan's calorie target, carried on every row for
// adherence comparison (zero when the user has no diet plan).
type NutritionDay struct {
	Date           string  `json:"date"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fats           float64 `json:"fats"`
	TargetCalories float64 `json:"target_calories,omitempty"`
}
