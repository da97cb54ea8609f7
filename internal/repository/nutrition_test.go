package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutritionRepositoryLogMeal(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNutritionRepository(db, repository.NewDietRepository(db))
	ctx := context.Background()

	id, err := repo.LogMeal(ctx, 1, models.MealLogInput{
		MealType:         "Breakfast",
		FoodItems:        "Oats, banana",
		CaloriesConsumed: 420,
		ProteinG:         20,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	var log models.MealLog
	require.NoError(t, db.First(&log, id).Error)
	assert.Equal(t, "Breakfast", log.MealType)
	assert.False(t, log.LoggedAt.IsZero())
}

func TestNutritionRepositoryLogMealRequiresType(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNutritionRepository(db, repository.NewDietRepository(db))

	_, err := repo.LogMeal(context.Background(), 1, models.MealLogInput{CaloriesConsumed: 300})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestNutritionRepositoryDailyAggregates(t *testing.T) {
	db := setupTestDB(t)
	diets := repository.NewDietRepository(db)
	repo := repository.NewNutritionRepository(db, diets)
	ctx := context.Background()

	// Two meals on the same day sum into one bucket; a meal the day before
	// forms its own earlier bucket.
	day := time.Now().Add(-48 * time.Hour)
	earlier := day.Add(-24 * time.Hour)

	_, err := repo.LogMeal(ctx, 1, models.MealLogInput{
		MealType: "Breakfast", CaloriesConsumed: 500, ProteinG: 30, CarbsG: 60, FatG: 15, LoggedAt: &day,
	})
	require.NoError(t, err)
	_, err = repo.LogMeal(ctx, 1, models.MealLogInput{
		MealType: "Dinner", CaloriesConsumed: 600, ProteinG: 40, CarbsG: 50, FatG: 20, LoggedAt: &day,
	})
	require.NoError(t, err)
	_, err = repo.LogMeal(ctx, 1, models.MealLogInput{
		MealType: "Lunch", CaloriesConsumed: 700, LoggedAt: &earlier,
	})
	require.NoError(t, err)

	days, err := repo.DailyAggregates(ctx, 1, "1 Week")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 700.0, days[0].Calories)
	assert.Equal(t, 1100.0, days[1].Calories)
	assert.Equal(t, 70.0, days[1].Protein)
	assert.Equal(t, 110.0, days[1].Carbs)
	assert.Equal(t, 35.0, days[1].Fats)

	// No diet plan yet, so no target attached.
	assert.Zero(t, days[0].TargetCalories)

	_, err = diets.SavePlan(ctx, 1, sampleDietInput("Targets", 1800))
	require.NoError(t, err)

	days, err = repo.DailyAggregates(ctx, 1, "1 Week")
	require.NoError(t, err)
	for _, d := range days {
		assert.Equal(t, 1800.0, d.TargetCalories)
	}
}

func TestNutritionRepositoryAddFoodIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNutritionRepository(db, repository.NewDietRepository(db))
	ctx := context.Background()

	require.NoError(t, repo.AddFood(ctx, 1, "Chicken breast"))
	require.NoError(t, repo.AddFood(ctx, 1, "Chicken breast"))
	require.NoError(t, repo.AddFood(ctx, 1, "Brown rice"))
	// Same food for another user is a separate inventory row.
	require.NoError(t, repo.AddFood(ctx, 2, "Chicken breast"))

	foods, err := repo.ListFoods(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brown rice", "Chicken breast"}, foods)

	foods, err = repo.ListFoods(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken breast"}, foods)
}

func TestNutritionRepositoryAddFoodRequiresName(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNutritionRepository(db, repository.NewDietRepository(db))

	err := repo.AddFood(context.Background(), 1, "")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
