package models

import "time"

// DietPlan is a user-owned meal program with calorie/macro targets.
type DietPlan struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"index;not null" json:"user_id"`
	Name                string    `gorm:"not null" json:"name"`
	CalorieTarget       float64   `json:"calorie_target"`
	ProteinTargetG      float64   `json:"protein_target_g"`
	CarbTargetG         float64   `json:"carb_target_g"`
	FatTargetG          float64   `json:"fat_target_g"`
	DietaryRestrictions string    `json:"dietary_restrictions"`
	AIGenerated         bool      `json:"ai_generated"`
	GenerationPrompt    string    `json:"generation_prompt,omitempty"`
	CreatedAt           time.Time `json:"created_at"`

	Meals        []MealPlan         `gorm:"foreignKey:DietPlanID" json:"meals,omitempty"`
	ShoppingList []ShoppingListItem `gorm:"foreignKey:DietPlanID" json:"shopping_list,omitempty"`
}

// MealPlan is one meal of a diet plan, keyed by day number and meal type.
// Meals are owned rows and are not deduplicated across plans.
type MealPlan struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	DietPlanID         uint    `gorm:"index;not null" json:"diet_plan_id"`
	DayNumber          int     `json:"day_number"`
	MealType           string  `json:"meal_type"`
	RecipeName         string  `json:"recipe_name"`
	Ingredients        string  `json:"ingredients"`
	Instructions       string  `json:"instructions"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinG           float64 `json:"protein_g"`
	CarbsG             float64 `json:"carbs_g"`
	FatG               float64 `json:"fat_g"`
	Servings           int     `json:"servings"`
}

// ShoppingListItem is one ingredient to buy for a diet plan.
type ShoppingListItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"index;not null" json:"user_id"`
	DietPlanID uint    `gorm:"index;not null" json:"diet_plan_id"`
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
}

// TableName keeps the table aligned with the versioned schema.
func (ShoppingListItem) TableName() string { return "shopping_lists" }

// DietPlanInput is the structured payload persisted by SaveDietPlan.
type DietPlanInput struct {
	Name                string                 `json:"name"`
	CalorieTarget       float64                `json:"calorie_target"`
	ProteinTargetG      float64                `json:"protein_target_g"`
	CarbTargetG         float64                `json:"carb_target_g"`
	FatTargetG          float64                `json:"fat_target_g"`
	DietaryRestrictions string                 `json:"dietary_restrictions"`
	AIGenerated         bool                   `json:"ai_generated"`
	GenerationPrompt    string                 `json:"generation_prompt,omitempty"`
	Meals               []MealPlanInput        `json:"meals"`
	ShoppingList        []ShoppingListItemInput `json:"shopping_list"`
}

// MealPlanInput is one meal of a DietPlanInput.
type MealPlanInput struct {
	DayNumber          int     `json:"day_number"`
	MealType           string  `json:"meal_type"`
	RecipeName         string  `json:"recipe_name"`
	Ingredients        string  `json:"ingredients"`
	Instructions       string  `json:"instructions"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinG           float64 `json:"protein_g"`
	CarbsG             float64 `json:"carbs_g"`
	FatG               float64 `json:"fat_g"`
	Servings           int     `json:"servings"`
}

// ShoppingListItemInput is one item of a DietPlanInput shopping list.
type ShoppingListItemInput struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}
