package repository

import (
	"context"
	"time"

	"fittrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NutritionRepository defines persistence operations for meal logging and the
// food inventory.
type NutritionRepository interface {
	LogMeal(ctx context.Context, userID uint, input models.MealLogInput) (uint, error)
	DailyAggregates(ctx context.Context, userID uint, dateRange string) ([]models.NutritionDay, error)
	AddFood(ctx context.Context, userID uint, foodName string) error
	ListFoods(ctx context.Context, userID uint) ([]string, error)
}

type nutritionRepository struct {
	db    *gorm.DB
	diets DietRepository
	now   func() time.Time
}

// NewNutritionRepository returns a new NutritionRepository implementation.
// The diet repository supplies the calorie target attached to daily
// aggregates.
func NewNutritionRepository(db *gorm.DB, diets DietRepository) NutritionRepository {
	return &nutritionRepository{db: db, diets: diets, now: time.Now}
}

func (r *nutritionRepository) LogMeal(ctx context.Context, userID uint, input models.MealLogInput) (uint, error) {
	if input.MealType == "" {
		return 0, models.NewValidationError("Meal type is required")
	}

	loggedAt := r.now()
	if input.LoggedAt != nil {
		loggedAt = *input.LoggedAt
	}

	log := models.MealLog{
		UserID:           userID,
		MealType:         input.MealType,
		FoodItems:        input.FoodItems,
		CaloriesConsumed: input.CaloriesConsumed,
		ProteinG:         input.ProteinG,
		CarbsG:           input.CarbsG,
		FatG:             input.FatG,
		LoggedAt:         loggedAt,
	}
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return log.ID, nil
}

// DailyAggregates sums meal logs per calendar day within the trailing window
// and attaches the latest diet plan's calorie target to every row.
func (r *nutritionRepository) DailyAggregates(ctx context.Context, userID uint, dateRange string) ([]models.NutritionDay, error) {
	start := WindowStart(dateRange, r.now())
	bucket := dayBucket(r.db, "logged_at")

	var days []models.NutritionDay
	err := r.db.WithContext(ctx).
		Table("meal_logs").
		Select(bucket+" AS date, "+
			"SUM(calories_consumed) AS calories, "+
			"SUM(protein_g) AS protein, "+
			"SUM(carbs_g) AS carbs, "+
			"SUM(fat_g) AS fats").
		Where("user_id = ? AND logged_at >= ?", userID, start).
		Group(bucket).
		Order("date ASC").
		Scan(&days).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	target, ok, err := r.diets.LatestCalorieTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		for i := range days {
			days[i].TargetCalories = target
		}
	}
	return days, nil
}

// AddFood records a food in the user's inventory. Re-adding an existing food
// is a no-op, the insert-or-ignore keeps the name unique per user without a
// prior existence check.
func (r *nutritionRepository) AddFood(ctx context.Context, userID uint, foodName string) error {
	if foodName == "" {
		return models.NewValidationError("Food name is required")
	}

	item := models.FoodInventoryItem{UserID: userID, FoodName: foodName}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "food_name"}},
		DoNothing: true,
	}).Create(&item).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *nutritionRepository) ListFoods(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.FoodInventoryItem{}).
		Where("user_id = ?", userID).
		Order("food_name ASC").
		Pluck("food_name", &names).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}
